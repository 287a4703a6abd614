package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/wedding-vendors/internal/audit"
	"github.com/BruksfildServices01/wedding-vendors/internal/auth"
	domain "github.com/BruksfildServices01/wedding-vendors/internal/domain/user"
	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/models"
	"github.com/BruksfildServices01/wedding-vendors/internal/validators"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Session is what a successful register or login returns to the client.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type Register struct {
	users  domain.Repository
	tokens *auth.TokenIssuer
	emails *validators.EmailDomainChecker
	audit  *audit.Dispatcher
	now    func() time.Time
}

// NewRegister builds the signup use case. emails may be nil to skip the
// DNS check on the email domain.
func NewRegister(
	users domain.Repository,
	tokens *auth.TokenIssuer,
	emails *validators.EmailDomainChecker,
	audit *audit.Dispatcher,
) *Register {
	return &Register{
		users:  users,
		tokens: tokens,
		emails: emails,
		audit:  audit,
		now:    time.Now,
	}
}

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*Session, error) {

	in.Email = validators.NormalizeEmail(in.Email)
	if err := validators.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.emails.Check(ctx, in.Email); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, httperr.ErrInternal("Failed to hash password", err)
	}

	now := uc.now()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, httperr.ErrInternal("Failed to generate token", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   user.ID,
		Action:   audit.ActionUserRegistered,
		Entity:   "user",
		EntityID: user.ID,
	})

	return &Session{Token: token, User: user}, nil
}
