package domain

import "errors"

var ErrIdentityNotFound = errors.New("identity not found")
var ErrSecretMismatch = errors.New("secret mismatch")
var ErrAccountLocked = errors.New("account locked")
var ErrAccountExpired = errors.New("account expired")
var ErrCredentialsExpired = errors.New("credentials expired")
var ErrAuthenticationFailed = errors.New("authentication failed")
var ErrAuthorizationDenied = errors.New("authorization denied")
var ErrSessionLimitExceeded = errors.New("session limit exceeded")

// AuthenticatedIdentity is the ephemeral descriptor produced by a
// successful username resolution. It is built per authentication attempt
// and never persisted.
type AuthenticatedIdentity struct {
	Username              string
	PasswordHash          string
	CredentialsNonExpired bool
	AccountNonLocked      bool
	AccountNonExpired     bool
	Authorities           []string
}

// HasAnyAuthority reports whether the identity holds at least one of the
// required authorities.
func (id *AuthenticatedIdentity) HasAnyAuthority(required ...string) bool {
	for _, want := range required {
		for _, have := range id.Authorities {
			if have == want {
				return true
			}
		}
	}
	return false
}

// StatusError returns the first failing account-status flag as its domain
// error, or nil when the account is usable. Credential expiry is reported
// last so a locked or expired account masks it, matching the order the
// providers check the flags in.
func (id *AuthenticatedIdentity) StatusError() error {
	switch {
	case !id.AccountNonLocked:
		return ErrAccountLocked
	case !id.AccountNonExpired:
		return ErrAccountExpired
	case !id.CredentialsNonExpired:
		return ErrCredentialsExpired
	}
	return nil
}
