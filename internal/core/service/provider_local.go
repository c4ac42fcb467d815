package service

import (
	"context"
	"errors"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
)

// LocalProvider authenticates against the relational user store: resolve
// the username, gate on the account-status flags, then compare the secret.
type LocalProvider struct {
	resolver *IdentityResolver
	verifier *CredentialVerifier
}

func NewLocalProvider(resolver *IdentityResolver, verifier *CredentialVerifier) *LocalProvider {
	return &LocalProvider{resolver: resolver, verifier: verifier}
}

func (p *LocalProvider) Kind() ProviderKind { return ProviderLocal }

// Authenticate checks username/secret against the store. Unknown usernames
// still pay for a full-cost hash comparison so the caller cannot tell "no
// such user" from "wrong secret" by timing. The locked and expired flags
// are checked before the secret, credential expiry after a match, the same
// order the original DAO provider used.
func (p *LocalProvider) Authenticate(ctx context.Context, username, secret string) Result {
	identity, err := p.resolver.Resolve(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			p.verifier.VerifyDummy(secret)
			return Result{Outcome: OutcomeRejected, Err: domain.ErrIdentityNotFound}
		}
		// Store unreachable: this provider cannot answer.
		return Result{Outcome: OutcomeNotApplicable, Err: err}
	}

	if !identity.AccountNonLocked {
		return Result{Outcome: OutcomeRejected, Err: domain.ErrAccountLocked}
	}
	if !identity.AccountNonExpired {
		return Result{Outcome: OutcomeRejected, Err: domain.ErrAccountExpired}
	}

	if !p.verifier.Verify(secret, identity.PasswordHash) {
		return Result{Outcome: OutcomeRejected, Err: domain.ErrSecretMismatch}
	}

	if !identity.CredentialsNonExpired {
		return Result{Outcome: OutcomeRejected, Err: domain.ErrCredentialsExpired}
	}

	return Result{Outcome: OutcomeSuccess, Identity: identity}
}
