package service

import (
	"context"
	"errors"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
	"github.com/pres-portal/auth-gateway/internal/core/ports"
)

// DirectoryProvider delegates authentication to the external directory
// service. The directory owns its account flags; an account it considers
// locked or expired comes back as a rejection from the service itself.
type DirectoryProvider struct {
	directory ports.DirectoryService
}

func NewDirectoryProvider(directory ports.DirectoryService) *DirectoryProvider {
	return &DirectoryProvider{directory: directory}
}

func (p *DirectoryProvider) Kind() ProviderKind { return ProviderDirectory }

func (p *DirectoryProvider) Authenticate(ctx context.Context, username, secret string) Result {
	authorities, err := p.directory.Authenticate(ctx, username, secret)
	switch {
	case err == nil:
		return Result{
			Outcome: OutcomeSuccess,
			Identity: &domain.AuthenticatedIdentity{
				Username:              username,
				CredentialsNonExpired: true,
				AccountNonLocked:      true,
				AccountNonExpired:     true,
				Authorities:           authorities,
			},
		}
	case errors.Is(err, domain.ErrIdentityNotFound),
		errors.Is(err, domain.ErrSecretMismatch),
		errors.Is(err, domain.ErrAccountLocked),
		errors.Is(err, domain.ErrAccountExpired),
		errors.Is(err, domain.ErrCredentialsExpired):
		return Result{Outcome: OutcomeRejected, Err: err}
	default:
		// Directory unreachable or answered garbage: let the chain move on.
		return Result{Outcome: OutcomeNotApplicable, Err: err}
	}
}
