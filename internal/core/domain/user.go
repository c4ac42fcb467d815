package domain

// Authority names granted through role membership. These mirror the role
// names provisioned in the PRES database.
const (
	AuthoritySysAdmin     = "ROLE_SYS_ADMIN"
	AuthorityAPIUser      = "ROLE_API_USER"
	AuthorityReadOnlyUser = "ROLE_READ_ONLY_USER"
)

// Role is a named authority grant. Users gain an authority by holding the
// role of the same name.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is an identity record from the user store. Records are provisioned
// externally; this service only ever reads them.
type User struct {
	ID                    int64  `json:"id"`
	Username              string `json:"username"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Email                 string `json:"email"`
	CredentialsNonExpired bool   `json:"credentials_non_expired"`
	AccountNonLocked      bool   `json:"account_non_locked"`
	AccountNonExpired     bool   `json:"account_non_expired"`
	PasswordHash          string `json:"-"`
	Roles                 []Role `json:"roles"`
}

// Authorities returns the union of the user's role names with duplicates
// removed. An empty role set yields an empty (never nil) slice.
func (u *User) Authorities() []string {
	seen := make(map[string]struct{}, len(u.Roles))
	out := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r.Name)
	}
	return out
}
