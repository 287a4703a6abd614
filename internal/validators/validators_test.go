package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
)

type signup struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Pricing float64 `json:"pricing" validate:"gt=0"`
}

func fieldsOf(t *testing.T, err error) (string, []string) {
	t.Helper()
	var he *httperr.Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, httperr.CodeValidation, he.Code)
	return he.Message, he.Fields
}

func TestStructReportsMissingFieldsByJSONName(t *testing.T) {
	msg, fields := fieldsOf(t, Struct(signup{Pricing: 10}))
	assert.Equal(t, []string{"name", "email"}, fields)
	assert.Equal(t, "Missing required fields: name, email", msg)
}

func TestStructReportsInvalidFields(t *testing.T) {
	msg, fields := fieldsOf(t, Struct(signup{Name: "Ana", Email: "not-an-email"}))
	assert.Equal(t, []string{"email", "pricing"}, fields)
	assert.Contains(t, msg, "invalid")
}

func TestStructAcceptsValidPayload(t *testing.T) {
	assert.NoError(t, Struct(signup{Name: "Ana", Email: "ana@example.com", Pricing: 1}))
}

type fakeResolver struct {
	mx  map[string]bool
	ips map[string]bool
}

func (r fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if r.mx[name] {
		return []*net.MX{{Host: "mx." + name}}, nil
	}
	return nil, errors.New("no such host")
}

func (r fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if r.ips[host] {
		return []net.IPAddr{{IP: net.IPv4(127, 0, 0, 1)}}, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainChecker(t *testing.T) {
	ctx := context.Background()
	c := NewEmailDomainChecker(fakeResolver{
		mx:  map[string]bool{"mail.com": true},
		ips: map[string]bool{"web.com": true},
	})

	assert.NoError(t, c.Check(ctx, "ana@mail.com"))
	assert.NoError(t, c.Check(ctx, "ana@web.com"))

	for _, bad := range []string{"ana@nowhere.test", "ana@", "ana"} {
		_, fields := fieldsOf(t, c.Check(ctx, bad))
		assert.Equal(t, []string{"email"}, fields, bad)
	}

	var disabled *EmailDomainChecker
	assert.NoError(t, disabled.Check(ctx, "ana"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@mail.com", NormalizeEmail("  Ana@Mail.COM "))
}
