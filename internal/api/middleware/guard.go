package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pres-portal/auth-gateway/internal/api/metrics"
	"github.com/pres-portal/auth-gateway/internal/core/domain"
	"github.com/pres-portal/auth-gateway/internal/core/ports"
	"github.com/pres-portal/auth-gateway/internal/core/service"
)

// IdentityKey is the echo context key the guard stores the authenticated
// identity under.
const IdentityKey = "identity"

const basicRealm = `Basic realm="pres"`

// GuardDeps wires the route guard's collaborators.
type GuardDeps struct {
	Policy   *service.Policy
	Chain    *service.Chain
	Sessions *service.SessionManager
	Audit    ports.AuditSink
	Log      zerolog.Logger
}

// Guard is the composition point of the security core. For every request it
// matches the path against the policy, resolves the caller's identity (via
// session reuse where the rule allows it, otherwise via the rule's provider
// subset and HTTP Basic credentials), and checks the rule's authority set.
//
// Paths matching no rule are denied unless explicitly public. Every
// authentication-level failure leaves this middleware as a bare
// domain.ErrAuthenticationFailed; the error handler renders the generic
// response.
func Guard(deps GuardDeps) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			if deps.Policy.IsPublic(path) {
				return next(c)
			}

			rule, ok := deps.Policy.Match(path)
			if !ok {
				// Default deny.
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, basicRealm)
				return domain.ErrAuthenticationFailed
			}

			identity, err := resolveCaller(c, deps, rule)
			if err != nil {
				return err
			}

			if !identity.HasAnyAuthority(rule.Authorities...) {
				metrics.AuthorizationDenialsTotal.WithLabelValues(rule.Name).Inc()
				deps.Audit.Enqueue(domain.AuthEvent{
					Username: identity.Username,
					Path:     path,
					Outcome:  domain.AuditDenied,
					At:       time.Now().UTC(),
				})
				return domain.ErrAuthorizationDenied
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// resolveCaller produces the request's identity: a live session when the
// rule supports sessions, else a fresh run of the rule's provider subset.
func resolveCaller(c echo.Context, deps GuardDeps, rule service.Rule) (*domain.AuthenticatedIdentity, error) {
	ctx := c.Request().Context()

	if rule.Sessions {
		if cookie, err := c.Cookie(service.CookieName); err == nil && cookie.Value != "" {
			identity, err := deps.Sessions.Validate(ctx, cookie.Value)
			if err == nil {
				return identity, nil
			}
			// Stale or forged cookie: fall through to fresh credentials.
		}
	}

	username, secret, ok := c.Request().BasicAuth()
	if !ok {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, basicRealm)
		return nil, domain.ErrAuthenticationFailed
	}

	identity, kind, err := deps.Chain.Subset(rule.Providers...).Authenticate(ctx, username, secret)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(string(kind), "failure").Inc()
		deps.Audit.Enqueue(domain.AuthEvent{
			Username: username,
			Path:     c.Request().URL.Path,
			Provider: string(kind),
			Outcome:  domain.AuditFailure,
			Reason:   failureReason(err),
			At:       time.Now().UTC(),
		})
		return nil, domain.ErrAuthenticationFailed
	}

	metrics.LoginAttemptsTotal.WithLabelValues(string(kind), "success").Inc()
	deps.Audit.Enqueue(domain.AuthEvent{
		Username: identity.Username,
		Path:     c.Request().URL.Path,
		Provider: string(kind),
		Outcome:  domain.AuditSuccess,
		At:       time.Now().UTC(),
	})

	if rule.Sessions {
		if err := startSession(c, deps, identity); err != nil {
			deps.Log.Error().Err(err).Str("username", identity.Username).Msg("session registration failed")
			return nil, domain.ErrAuthenticationFailed
		}
	}

	return identity, nil
}

// startSession registers a session for a fresh login and sets the cookie.
func startSession(c echo.Context, deps GuardDeps, identity *domain.AuthenticatedIdentity) error {
	token, evicted, err := deps.Sessions.Issue(c.Request().Context(), identity, time.Now().UTC())
	if err != nil {
		return err
	}
	metrics.SessionsIssuedTotal.Inc()
	if evicted != "" {
		metrics.SessionsEvictedTotal.Inc()
	}

	c.SetCookie(&http.Cookie{
		Name:     service.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	return nil
}

// failureReason flattens a chain error to a stable audit label. Only the
// audit trail ever sees the distinction; clients get the generic response.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrIdentityNotFound):
		return "identity_not_found"
	case errors.Is(err, domain.ErrSecretMismatch):
		return "secret_mismatch"
	case errors.Is(err, domain.ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, domain.ErrAccountExpired):
		return "account_expired"
	case errors.Is(err, domain.ErrCredentialsExpired):
		return "credentials_expired"
	default:
		return "authentication_failed"
	}
}
