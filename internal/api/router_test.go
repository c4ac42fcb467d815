package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
	"github.com/pres-portal/auth-gateway/internal/core/service"
	"github.com/pres-portal/auth-gateway/internal/infrastructure/session"
)

// fakeDirectory authenticates one fixed credential pair.
type fakeDirectory struct {
	username, secret string
	authorities      []string
}

func (d *fakeDirectory) Authenticate(_ context.Context, username, secret string) ([]string, error) {
	if username != d.username {
		return nil, domain.ErrIdentityNotFound
	}
	if secret != d.secret {
		return nil, domain.ErrSecretMismatch
	}
	return d.authorities, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrIdentityNotFound
}

type dropSink struct{}

func (dropSink) Enqueue(domain.AuthEvent) {}

// Shared across tests: bcrypt at cost 12 is slow by design.
var (
	verifierOnce sync.Once
	testVerifier *service.CredentialVerifier
	testHash     string
	verifierErr  error
)

func sharedVerifier(t *testing.T) (*service.CredentialVerifier, string) {
	t.Helper()
	verifierOnce.Do(func() {
		testVerifier, verifierErr = service.NewCredentialVerifier()
		if verifierErr == nil {
			testHash, verifierErr = testVerifier.Hash("dbpass")
		}
	})
	if verifierErr != nil {
		t.Fatalf("verifier setup: %v", verifierErr)
	}
	return testVerifier, testHash
}

// newTestGateway wires a full router around in-memory collaborators. The
// local provider recognises dbuser/dbpass (READ_ONLY_USER); the directory
// recognises aduser/adpass (API_USER).
func newTestGateway(t *testing.T) *echo.Echo {
	t.Helper()

	verifier, hash := sharedVerifier(t)

	users := &fakeUserRepo{users: map[string]*domain.User{
		"dbuser": {
			ID: 1, Username: "dbuser", PasswordHash: hash,
			CredentialsNonExpired: true, AccountNonLocked: true, AccountNonExpired: true,
			Roles: []domain.Role{{ID: 1, Name: domain.AuthorityReadOnlyUser}},
		},
	}}

	local := service.NewLocalProvider(service.NewIdentityResolver(users), verifier)
	remote := service.NewDirectoryProvider(&fakeDirectory{
		username: "aduser", secret: "adpass",
		authorities: []string{domain.AuthorityAPIUser},
	})

	return NewRouter(Deps{
		Log:    zerolog.Nop(),
		Users:  users,
		Chain:  service.NewChain(local, remote),
		Policy: DefaultPolicy(),
		Sessions: service.NewSessionManager(
			session.NewMemoryRegistry(10), "0123456789abcdef0123456789abcdef", time.Hour),
		Audit:   dropSink{},
		Metrics: prometheus.NewRegistry(),
	})
}

func TestRouter_SearchAcceptsDirectoryUser(t *testing.T) {
	e := newTestGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/", nil)
	req.SetBasicAuth("aduser", "adpass")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "Search works" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("the stateless group must never set cookies: %v", rec.Result().Cookies())
	}
}

func TestRouter_SearchNeverConsultsLocalStore(t *testing.T) {
	e := newTestGateway(t)

	// Valid DB credentials, but the search rule only admits the directory
	// provider.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/", nil)
	req.SetBasicAuth("dbuser", "dbpass")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_UserGroupAcceptsEitherProvider(t *testing.T) {
	e := newTestGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/home/dbuser", nil)
	req.SetBasicAuth("dbuser", "dbpass")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("local login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// The directory user authenticates on this group too, but holds only
	// API_USER, which the user rule does not accept.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/user/home/dbuser", nil)
	req.SetBasicAuth("aduser", "adpass")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_UserSessionReuse(t *testing.T) {
	e := newTestGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/home/dbuser", nil)
	req.SetBasicAuth("dbuser", "dbpass")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d", rec.Code)
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == service.CookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("no session cookie issued")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/user/home/dbuser", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("session reuse failed: %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_LogoutInvalidatesSession(t *testing.T) {
	e := newTestGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/home/dbuser", nil)
	req.SetBasicAuth("dbuser", "dbpass")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == service.CookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("no session cookie issued")
	}

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout failed: %d", rec.Code)
	}

	// The old cookie must no longer authenticate.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/user/home/dbuser", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestRouter_UnknownUserAndWrongSecretAreIndistinguishable(t *testing.T) {
	e := newTestGateway(t)

	attempt := func(username, secret string) (int, string) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/user/home/dbuser", nil)
		req.SetBasicAuth(username, secret)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code, rec.Body.String()
	}

	unknownCode, unknownBody := attempt("ghost", "whatever")
	wrongCode, wrongBody := attempt("dbuser", "wrongpass")

	if unknownCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", unknownCode)
	}
	if unknownCode != wrongCode || unknownBody != wrongBody {
		t.Fatalf("responses differ: (%d, %q) vs (%d, %q)",
			unknownCode, unknownBody, wrongCode, wrongBody)
	}
}

func TestRouter_UserLookupMiss(t *testing.T) {
	e := newTestGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/home/ghost", nil)
	req.SetBasicAuth("dbuser", "dbpass")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing record, got %d", rec.Code)
	}
}

func TestRouter_HealthIsPublic(t *testing.T) {
	e := newTestGateway(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_DefaultDeny(t *testing.T) {
	e := newTestGateway(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/other", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unconfigured paths must deny, got %d", rec.Code)
	}
}
