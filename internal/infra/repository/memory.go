package repository

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/BruksfildServices01/wedding-vendors/internal/audit"
	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/models"
)

var errDuplicateEmail = errors.New("duplicate email")

// MemoryStore keeps every collection in process memory. It backs
// DB_DRIVER=memory and the test suites. Records are cloned in and out,
// including their slices and top-level maps.
type MemoryStore struct {
	mu sync.RWMutex

	users         []models.User
	caterers      []models.Caterer
	photographers []models.Photographer
	auditLogs     []models.AuditLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return httperr.ErrConflict("A user with this email already exists", errDuplicateEmail)
		}
	}
	s.users = append(s.users, *u)
	return nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, httperr.ErrNotFound("User not found")
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, httperr.ErrNotFound("User not found")
}

// --------------------------------------------------
// Caterers
// --------------------------------------------------

func (s *MemoryStore) CreateCaterer(_ context.Context, c *models.Caterer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Email != "" {
		for _, existing := range s.caterers {
			if existing.Email == c.Email {
				return httperr.ErrConflict("A caterer with this email already exists", errDuplicateEmail)
			}
		}
	}
	s.caterers = append(s.caterers, cloneCaterer(*c))
	return nil
}

func (s *MemoryStore) GetCaterer(_ context.Context, id string) (*models.Caterer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.caterers {
		if c.ID == id {
			out := cloneCaterer(c)
			return &out, nil
		}
	}
	return nil, httperr.ErrNotFound("Caterer not found")
}

func (s *MemoryStore) ApproveCaterer(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.caterers {
		if s.caterers[i].ID != id {
			continue
		}
		if s.caterers[i].IsApproved {
			return httperr.ErrBusiness("already_approved")
		}
		s.caterers[i].IsApproved = true
		return nil
	}
	return httperr.ErrNotFound("Caterer not found")
}

func (s *MemoryStore) ListApprovedCaterers(_ context.Context) ([]models.Caterer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Caterer, 0, len(s.caterers))
	for _, c := range s.caterers {
		if c.IsApproved {
			out = append(out, cloneCaterer(c))
		}
	}
	return out, nil
}

// Caterers returns every stored caterer, approved or not.
func (s *MemoryStore) Caterers() []models.Caterer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Caterer, 0, len(s.caterers))
	for _, c := range s.caterers {
		out = append(out, cloneCaterer(c))
	}
	return out
}

// --------------------------------------------------
// Photographers
// --------------------------------------------------

func (s *MemoryStore) CreatePhotographer(_ context.Context, p *models.Photographer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.photographers {
		if existing.Email == p.Email {
			return httperr.ErrConflict("A photographer with this email already exists", errDuplicateEmail)
		}
	}
	s.photographers = append(s.photographers, clonePhotographer(*p))
	return nil
}

func (s *MemoryStore) ListPhotographers(_ context.Context) ([]models.Photographer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Photographer, 0, len(s.photographers))
	for _, p := range s.photographers {
		out = append(out, clonePhotographer(p))
	}
	return out, nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *MemoryStore) CreateAuditLog(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditLogs = append(s.auditLogs, *entry)
	return nil
}

func (s *MemoryStore) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f = f.Normalize()
	matched := []models.AuditLog{}
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		if f.Matches(&s.auditLogs[i]) {
			matched = append(matched, s.auditLogs[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := min(f.Offset(), len(matched))
	end := min(start+f.Limit, len(matched))
	return matched[start:end], total, nil
}

func (s *MemoryStore) AuditLogs() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuditLog(nil), s.auditLogs...)
}

func cloneCaterer(c models.Caterer) models.Caterer {
	c.Services = slices.Clone(c.Services)
	c.Cuisines = slices.Clone(c.Cuisines)
	c.MenuImages = slices.Clone(c.MenuImages)
	if c.Capacity != nil {
		v := *c.Capacity
		c.Capacity = &v
	}
	if c.Pricing != nil {
		v := *c.Pricing
		c.Pricing = &v
	}
	return c
}

func clonePhotographer(p models.Photographer) models.Photographer {
	p.Specialties = slices.Clone(p.Specialties)
	p.PortfolioImages = slices.Clone(p.PortfolioImages)
	p.Availability = maps.Clone(p.Availability)
	return p
}
