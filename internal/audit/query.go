package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/wedding-vendors/internal/models"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Filter narrows an audit log listing. Zero values match everything.
type Filter struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time

	Page  int
	Limit int
}

// Normalize clamps paging to sane values.
func (f Filter) Normalize() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return f
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Matches reports whether entry passes the filter, for stores that
// filter in memory.
func (f Filter) Matches(entry *models.AuditLog) bool {
	if f.Action != "" && entry.Action != f.Action {
		return false
	}
	if f.Entity != "" && entry.Entity != f.Entity {
		return false
	}
	if !f.From.IsZero() && entry.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && entry.CreatedAt.After(f.To) {
		return false
	}
	return true
}

// Reader lists audit entries newest first, with the total before paging.
type Reader interface {
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

// Repository is a full audit backend: written by the dispatcher, read by
// the admin listing.
type Repository interface {
	Store
	Reader
}
