package service

import (
	"context"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
	"github.com/pres-portal/auth-gateway/internal/core/ports"
)

// IdentityResolver turns a username into an AuthenticatedIdentity by
// looking up exactly one user-store record and flattening its roles.
type IdentityResolver struct {
	repo ports.UserRepository
}

func NewIdentityResolver(repo ports.UserRepository) *IdentityResolver {
	return &IdentityResolver{repo: repo}
}

// Resolve returns the identity descriptor for username, or
// domain.ErrIdentityNotFound when no record matches. Callers must not let
// that distinction reach a client in any observable form.
func (r *IdentityResolver) Resolve(ctx context.Context, username string) (*domain.AuthenticatedIdentity, error) {
	user, err := r.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return &domain.AuthenticatedIdentity{
		Username:              user.Username,
		PasswordHash:          user.PasswordHash,
		CredentialsNonExpired: user.CredentialsNonExpired,
		AccountNonLocked:      user.AccountNonLocked,
		AccountNonExpired:     user.AccountNonExpired,
		Authorities:           user.Authorities(),
	}, nil
}
