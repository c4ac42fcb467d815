package service

import (
	"testing"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
)

func testPolicy() *Policy {
	return NewPolicy([]Rule{
		{
			Name:        "user_api",
			Prefix:      "/api/v1/user/",
			Authorities: []string{domain.AuthorityReadOnlyUser, domain.AuthoritySysAdmin},
			Sessions:    true,
		},
		{
			Name:        "search_api",
			Prefix:      "/api/v1/search/",
			Authorities: []string{domain.AuthorityAPIUser, domain.AuthoritySysAdmin},
		},
		{
			Name:   "api_root",
			Prefix: "/api/",
		},
	}, []string{"/static/", "/health"})
}

func TestPolicy_LongestPrefixWins(t *testing.T) {
	p := testPolicy()

	rule, ok := p.Match("/api/v1/search/foo")
	if !ok || rule.Name != "search_api" {
		t.Fatalf("expected search_api, got %q (matched=%v)", rule.Name, ok)
	}

	rule, ok = p.Match("/api/v1/user/home/jdoe")
	if !ok || rule.Name != "user_api" {
		t.Fatalf("expected user_api, got %q", rule.Name)
	}

	// Falls through to the shortest covering prefix.
	rule, ok = p.Match("/api/v2/other")
	if !ok || rule.Name != "api_root" {
		t.Fatalf("expected api_root, got %q", rule.Name)
	}
}

func TestPolicy_DefaultDeny(t *testing.T) {
	p := testPolicy()

	if _, ok := p.Match("/admin/console"); ok {
		t.Fatalf("unconfigured path must not match any rule")
	}
	if p.IsPublic("/admin/console") {
		t.Fatalf("unconfigured path must not be public")
	}
}

func TestPolicy_PublicPaths(t *testing.T) {
	p := testPolicy()

	if !p.IsPublic("/static/app.js") {
		t.Fatalf("static assets must bypass authentication")
	}
	if !p.IsPublic("/health/ready") {
		t.Fatalf("health probes must bypass authentication")
	}
	if p.IsPublic("/api/v1/user/home/jdoe") {
		t.Fatalf("guarded paths must not be public")
	}
}

func TestPolicy_OrSemantics(t *testing.T) {
	p := testPolicy()
	rule, _ := p.Match("/api/v1/search/")

	sysAdmin := &domain.AuthenticatedIdentity{Authorities: []string{domain.AuthoritySysAdmin}}
	if !sysAdmin.HasAnyAuthority(rule.Authorities...) {
		t.Fatalf("holding any one required authority must pass")
	}

	other := &domain.AuthenticatedIdentity{Authorities: []string{"ROLE_OTHER"}}
	if other.HasAnyAuthority(rule.Authorities...) {
		t.Fatalf("unlisted authority must not pass")
	}
}
