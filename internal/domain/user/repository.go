package user

import (
	"context"

	"github.com/BruksfildServices01/wedding-vendors/internal/models"
)

// Repository is the credential store. Lookups that match nothing return a
// 404 *httperr.Error; Create reports a taken email as a 409.
type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
