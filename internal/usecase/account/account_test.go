package account

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/wedding-vendors/internal/audit"
	"github.com/BruksfildServices01/wedding-vendors/internal/auth"
	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/infra/repository"
	"github.com/BruksfildServices01/wedding-vendors/internal/models"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var he *httperr.Error
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestRegisterCreatesUserAndToken(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	dispatcher := audit.NewDispatcher(audit.New(store))

	session, err := NewRegister(store, tokens, nil, dispatcher).Execute(ctx, RegisterInput{
		Name:     "Ana",
		Email:    "  Ana@Example.com ",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", session.User.Email)
	assert.Equal(t, models.RoleUser, session.User.Role)
	assert.NotEqual(t, "secret1", session.User.PasswordHash)

	claims, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.Subject)

	stored, err := store.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "secret1"))

	require.NoError(t, dispatcher.Close(ctx))
	logs := store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, audit.ActionUserRegistered, logs[0].Action)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	uc := NewRegister(repository.NewMemoryStore(), auth.NewTokenIssuer("secret", time.Hour), nil, nil)

	_, err := uc.Execute(context.Background(), RegisterInput{Email: "ana@example.com", Password: "123"})
	var he *httperr.Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, httperr.CodeValidation, he.Code)
	assert.ElementsMatch(t, []string{"name", "password"}, he.Fields)
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	ctx := context.Background()
	uc := NewRegister(repository.NewMemoryStore(), auth.NewTokenIssuer("secret", time.Hour), nil, nil)
	in := RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret1"}

	_, err := uc.Execute(ctx, in)
	require.NoError(t, err)

	in.Email = "ANA@example.com"
	_, err = uc.Execute(ctx, in)
	assert.Equal(t, httperr.CodeConflict, codeOf(t, err))
}

func seedUser(t *testing.T, store *repository.MemoryStore) {
	t.Helper()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(context.Background(), &models.User{
		ID: "u1", Name: "Ana", Email: "ana@example.com", PasswordHash: hash, Role: models.RoleAdmin,
	}))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedUser(t, store)
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	uc := NewLogin(store, tokens, nil)

	session, err := uc.Execute(ctx, LoginInput{Email: "Ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	claims, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = uc.Execute(ctx, LoginInput{Email: "ana@example.com", Password: "wrong"})
	assert.Equal(t, httperr.CodeUnauthorized, codeOf(t, err))

	_, err = uc.Execute(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.Equal(t, httperr.CodeUnauthorized, codeOf(t, err))

	_, err = uc.Execute(ctx, LoginInput{Email: "ana@example.com"})
	assert.Equal(t, httperr.CodeValidation, codeOf(t, err))
}

func TestLoginThrottlesRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedUser(t, store)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := auth.NewRedisLoginLimiter(rdb, 3, time.Minute)
	uc := NewLogin(store, auth.NewTokenIssuer("secret", time.Hour), limiter)

	for i := 0; i < 3; i++ {
		_, err := uc.Execute(ctx, LoginInput{Email: "ana@example.com", Password: "wrong"})
		assert.Equal(t, httperr.CodeUnauthorized, codeOf(t, err))
	}

	_, err := uc.Execute(ctx, LoginInput{Email: "ana@example.com", Password: "secret1"})
	assert.Equal(t, httperr.CodeTooManyAttempts, codeOf(t, err))

	mr.FastForward(2 * time.Minute)
	_, err = uc.Execute(ctx, LoginInput{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
}

func TestLoginSuccessResetsFailures(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedUser(t, store)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	uc := NewLogin(store, auth.NewTokenIssuer("secret", time.Hour), auth.NewRedisLoginLimiter(rdb, 2, time.Minute))

	_, err := uc.Execute(ctx, LoginInput{Email: "ana@example.com", Password: "wrong"})
	require.Error(t, err)
	_, err = uc.Execute(ctx, LoginInput{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, LoginInput{Email: "ana@example.com", Password: "wrong"})
	require.Error(t, err)

	_, err = uc.Execute(ctx, LoginInput{Email: "ana@example.com", Password: "secret1"})
	assert.NoError(t, err)
}
