package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	// Exact, case-sensitive match, same as the backing store.
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return u, nil
}

func TestIdentityResolver_Resolve(t *testing.T) {
	repo := newStubUserRepo(&domain.User{
		Username:              "jdoe",
		PasswordHash:          "$2a$12$hash",
		CredentialsNonExpired: true,
		AccountNonLocked:      true,
		AccountNonExpired:     true,
		Roles: []domain.Role{
			{ID: 1, Name: domain.AuthoritySysAdmin},
			{ID: 2, Name: domain.AuthorityReadOnlyUser},
			{ID: 1, Name: domain.AuthoritySysAdmin}, // duplicate assignment
		},
	})
	resolver := NewIdentityResolver(repo)

	identity, err := resolver.Resolve(context.Background(), "jdoe")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if identity.Username != "jdoe" {
		t.Fatalf("unexpected username %q", identity.Username)
	}
	if len(identity.Authorities) != 2 {
		t.Fatalf("expected deduplicated authorities, got %v", identity.Authorities)
	}
	if !identity.HasAnyAuthority(domain.AuthoritySysAdmin) {
		t.Fatalf("expected %s in %v", domain.AuthoritySysAdmin, identity.Authorities)
	}
}

func TestIdentityResolver_NotFound(t *testing.T) {
	resolver := NewIdentityResolver(newStubUserRepo())

	if _, err := resolver.Resolve(context.Background(), "ghost"); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestIdentityResolver_CaseSensitive(t *testing.T) {
	resolver := NewIdentityResolver(newStubUserRepo(&domain.User{Username: "jdoe"}))

	if _, err := resolver.Resolve(context.Background(), "JDoe"); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("username match must be case-sensitive, got %v", err)
	}
}

func TestIdentityResolver_EmptyRoleSet(t *testing.T) {
	resolver := NewIdentityResolver(newStubUserRepo(&domain.User{
		Username:         "norole",
		AccountNonLocked: true,
	}))

	identity, err := resolver.Resolve(context.Background(), "norole")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if identity.Authorities == nil || len(identity.Authorities) != 0 {
		t.Fatalf("expected empty non-nil authority set, got %#v", identity.Authorities)
	}
	if identity.HasAnyAuthority(domain.AuthorityReadOnlyUser, domain.AuthoritySysAdmin) {
		t.Fatalf("empty role set must not grant any authority")
	}
}
