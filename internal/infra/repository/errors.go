package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
)

// Postgres SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return mongo.IsDuplicateKeyError(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, mongo.ErrNoDocuments)
}

// translate maps store errors onto the API error taxonomy.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case isDuplicate(err):
		return httperr.ErrConflict("A "+entity+" with this email already exists", err)
	case isNotFound(err):
		return httperr.ErrNotFound(capitalize(entity) + " not found")
	default:
		return err
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
