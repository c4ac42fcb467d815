package ports

import "context"

// DirectoryService is the capability interface for the external directory
// authenticator. Implementations check the presented credentials against
// the directory and map the caller's directory groups to authority names.
//
// Errors are classified by the directory provider: domain.ErrIdentityNotFound
// and domain.ErrSecretMismatch mean the directory rejected the credentials;
// any other error means the directory could not give an answer.
type DirectoryService interface {
	Authenticate(ctx context.Context, username, secret string) ([]string, error)
}
