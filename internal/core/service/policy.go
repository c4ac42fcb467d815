package service

import (
	"sort"
	"strings"
)

// Rule guards one route prefix. Authorities use OR semantics: holding any
// one of them passes. Providers lists which chain members may authenticate
// requests under this prefix; Sessions enables cookie-based reuse of a
// prior authentication.
type Rule struct {
	Name        string
	Prefix      string
	Authorities []string
	Providers   []ProviderKind
	Sessions    bool
}

// Policy maps request paths to rules. Matching is longest-prefix-wins so an
// overlap like /api/v1/search/ vs /api/v1/ resolves deterministically; a
// path matching no rule is denied unless it is explicitly public.
type Policy struct {
	rules  []Rule
	public []string
}

// NewPolicy builds a policy from rules and public path prefixes. Rules are
// evaluated in descending prefix length, so registration order never
// matters.
func NewPolicy(rules []Rule, public []string) *Policy {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &Policy{rules: sorted, public: public}
}

// Match returns the most specific rule covering path.
func (p *Policy) Match(path string) (Rule, bool) {
	for _, r := range p.rules {
		if strings.HasPrefix(path, r.Prefix) {
			return r, true
		}
	}
	return Rule{}, false
}

// IsPublic reports whether path bypasses authentication entirely.
func (p *Policy) IsPublic(path string) bool {
	for _, prefix := range p.public {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
