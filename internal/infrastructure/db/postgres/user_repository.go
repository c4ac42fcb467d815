package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
	"github.com/pres-portal/auth-gateway/internal/core/ports"
)

// findByUsernameQuery flattens the user and its roles in one round trip.
// The username comparison is exact and case-sensitive ("user".username is
// a plain-collation unique column); that contract is pinned by tests.
const findByUsernameQuery = `
select u.id, u.username, u.first_name, u.last_name, u.email,
       u.credentials_non_expired, u.account_non_locked, u.account_non_expired,
       u.password, r.id, r.name
from "user" u
left join user_role ur on ur.user_id = u.id
left join role r on r.id = ur.role_id
where u.username = $1
order by r.id`

// UserRepository reads user records and role assignments. The store is
// provisioned and mutated externally; no write path exists here.
type UserRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns the user matching username exactly, with roles
// attached, or domain.ErrIdentityNotFound.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, findByUsernameQuery, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	defer rows.Close()

	var user *domain.User
	for rows.Next() {
		var (
			u        domain.User
			roleID   sql.NullInt64
			roleName sql.NullString
		)
		if err := rows.Scan(
			&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email,
			&u.CredentialsNonExpired, &u.AccountNonLocked, &u.AccountNonExpired,
			&u.PasswordHash, &roleID, &roleName,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if user == nil {
			u.Roles = []domain.Role{}
			user = &u
		}
		if roleID.Valid {
			user.Roles = append(user.Roles, domain.Role{ID: roleID.Int64, Name: roleName.String})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrIdentityNotFound
	}
	return user, nil
}
