package validators

import (
	"context"
	"net"
	"strings"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
)

// Resolver is the subset of *net.Resolver used to check email domains.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailDomainChecker rejects addresses whose domain has neither an MX nor
// an address record. A nil checker accepts everything.
type EmailDomainChecker struct {
	resolver Resolver
}

func NewEmailDomainChecker(resolver Resolver) *EmailDomainChecker {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return &EmailDomainChecker{resolver: resolver}
}

func (c *EmailDomainChecker) Check(ctx context.Context, email string) error {
	if c == nil {
		return nil
	}
	if !c.isDomainValid(ctx, email) {
		return httperr.ErrValidation("The email domain does not appear to be valid", []string{"email"})
	}
	return nil
}

func (c *EmailDomainChecker) isDomainValid(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := c.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := c.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// NormalizeEmail trims and lower-cases an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
