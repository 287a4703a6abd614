package account

import (
	"context"
	"log"
	"net/http"

	"github.com/BruksfildServices01/wedding-vendors/internal/auth"
	domain "github.com/BruksfildServices01/wedding-vendors/internal/domain/user"
	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/validators"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Login struct {
	users   domain.Repository
	tokens  *auth.TokenIssuer
	limiter auth.LoginLimiter
}

func NewLogin(
	users domain.Repository,
	tokens *auth.TokenIssuer,
	limiter auth.LoginLimiter,
) *Login {
	if limiter == nil {
		limiter = auth.NopLoginLimiter{}
	}
	return &Login{
		users:   users,
		tokens:  tokens,
		limiter: limiter,
	}
}

func (uc *Login) Execute(
	ctx context.Context,
	in LoginInput,
) (*Session, error) {

	in.Email = validators.NormalizeEmail(in.Email)
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	allowed, err := uc.limiter.Allow(ctx, in.Email)
	if err != nil {
		// Fail open when Redis is unreachable.
		log.Printf("login limiter: %v", err)
		allowed = true
	}
	if !allowed {
		return nil, httperr.ErrTooManyAttempts("Too many failed login attempts, try again later")
	}

	user, err := uc.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if httperr.StatusOf(err) != http.StatusNotFound {
			return nil, err
		}
		uc.fail(ctx, in.Email)
		return nil, httperr.ErrUnauthorized("Invalid credentials")
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		uc.fail(ctx, in.Email)
		return nil, httperr.ErrUnauthorized("Invalid credentials")
	}

	if err := uc.limiter.Reset(ctx, in.Email); err != nil {
		log.Printf("login limiter: %v", err)
	}

	token, err := uc.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, httperr.ErrInternal("Failed to generate token", err)
	}

	return &Session{Token: token, User: user}, nil
}

func (uc *Login) fail(ctx context.Context, email string) {
	if err := uc.limiter.Fail(ctx, email); err != nil {
		log.Printf("login limiter: %v", err)
	}
}
