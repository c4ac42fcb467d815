package ports

import (
	"context"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
)

// UserRepository defines read access to the externally provisioned user
// store. Username matching is exact and case-sensitive; that contract is
// owned by the backing store and covered by its tests.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
