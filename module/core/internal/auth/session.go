// Package auth maps a hosted-auth bearer token to the vendor it operates.
package auth

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/nedpals/supabase-go"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type userLookup interface {
	User(ctx context.Context, userToken string) (*supabase.User, error)
}

type vendorLookup interface {
	GetVendorByOwner(ctx context.Context, ownerID string) (*domain.Vendor, error)
}

type SessionProvider struct {
	users   userLookup
	vendors vendorLookup
}

// users is normally the Auth service of a supabase client.
func NewSessionProvider(users userLookup, vendors vendorLookup) *SessionProvider {
	return &SessionProvider{users: users, vendors: vendors}
}

func NewSupabaseSessionProvider(client *supabase.Client, vendors vendorLookup) *SessionProvider {
	return NewSessionProvider(client.Auth, vendors)
}

// CurrentVendorID resolves token to the id of the vendor owned by its user.
func (p *SessionProvider) CurrentVendorID(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.WithHint(errors.Mark(errors.New("missing bearer token"), domain.ErrUnauthorized), "sign in first")
	}

	user, err := p.users.User(ctx, token)
	if err != nil || user == nil || user.ID == "" {
		if err == nil {
			err = errors.New("empty user")
		}
		return "", errors.Mark(errors.Wrap(err, "resolve session"), domain.ErrUnauthorized)
	}

	vendor, err := p.vendors.GetVendorByOwner(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", errors.WithHint(
				errors.Mark(errors.Wrapf(err, "user %s", user.ID), domain.ErrUnauthorized),
				"finish vendor onboarding first",
			)
		}
		return "", err
	}
	return vendor.ID, nil
}
