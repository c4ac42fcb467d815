package service

import (
	"context"
	"errors"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
)

// ProviderKind tags an authentication strategy. The tag doubles as the
// provider label on metrics and audit events.
type ProviderKind string

const (
	ProviderLocal     ProviderKind = "local"
	ProviderDirectory ProviderKind = "directory"
)

// Outcome is the three-way result of one provider attempt.
type Outcome int

const (
	// OutcomeSuccess: the provider authenticated the caller.
	OutcomeSuccess Outcome = iota
	// OutcomeRejected: the provider recognised the attempt and refused it
	// (bad secret, locked account, unknown user).
	OutcomeRejected
	// OutcomeNotApplicable: the provider could not give an answer and the
	// chain should move on (e.g. the directory was unreachable).
	OutcomeNotApplicable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRejected:
		return "rejected"
	default:
		return "not_applicable"
	}
}

// Result carries a provider's outcome. Identity is set only on success;
// Err holds the rejection reason or the not-applicable cause.
type Result struct {
	Outcome  Outcome
	Identity *domain.AuthenticatedIdentity
	Err      error
}

// Provider is one pluggable authentication strategy.
type Provider interface {
	Kind() ProviderKind
	Authenticate(ctx context.Context, username, secret string) Result
}

// Chain tries providers in their configured order and stops at the first
// success. A rejection does not stop the chain; a later provider may still
// accept the credentials.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Subset returns a chain restricted to the given kinds, preserving order.
// Route groups use this to pick which providers may authenticate them.
func (c *Chain) Subset(kinds ...ProviderKind) *Chain {
	keep := make(map[ProviderKind]struct{}, len(kinds))
	for _, k := range kinds {
		keep[k] = struct{}{}
	}
	sub := make([]Provider, 0, len(c.providers))
	for _, p := range c.providers {
		if _, ok := keep[p.Kind()]; ok {
			sub = append(sub, p)
		}
	}
	return &Chain{providers: sub}
}

// Authenticate runs the chain. On success it returns the identity and the
// kind of the provider that accepted. On failure the error is the last
// rejection reason, or domain.ErrAuthenticationFailed when every provider
// was not applicable. The caller owns collapsing that reason to a generic
// response before it leaves the process.
func (c *Chain) Authenticate(ctx context.Context, username, secret string) (*domain.AuthenticatedIdentity, ProviderKind, error) {
	var lastKind ProviderKind
	var lastErr error

	for _, p := range c.providers {
		res := p.Authenticate(ctx, username, secret)
		switch res.Outcome {
		case OutcomeSuccess:
			return res.Identity, p.Kind(), nil
		case OutcomeRejected:
			lastKind = p.Kind()
			lastErr = res.Err
		}
	}

	if lastErr == nil {
		lastErr = domain.ErrAuthenticationFailed
	}
	if !errors.Is(lastErr, domain.ErrAuthenticationFailed) {
		lastErr = errors.Join(domain.ErrAuthenticationFailed, lastErr)
	}
	return nil, lastKind, lastErr
}
