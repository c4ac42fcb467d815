package service

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is fixed at 12 to match the encoder the provisioning process
// hashes secrets with. Changing it would not break verification (the cost is
// embedded in each hash) but new hashes must keep parity with provisioning.
const BcryptCost = 12

// CredentialVerifier compares presented secrets against stored bcrypt
// hashes. bcrypt is salted and deliberately slow, and the comparison cost
// does not depend on where a mismatch occurs.
type CredentialVerifier struct {
	dummyHash []byte
}

// NewCredentialVerifier builds a verifier. The constructor pre-computes a
// throwaway hash so that lookups for unknown usernames can burn the same
// amount of CPU as a real comparison.
func NewCredentialVerifier() (*CredentialVerifier, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), BcryptCost)
	if err != nil {
		return nil, err
	}
	return &CredentialVerifier{dummyHash: dummy}, nil
}

// Verify reports whether presented matches the stored hash. The plaintext
// secret is never logged or retained.
func (v *CredentialVerifier) Verify(presented, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(presented)) == nil
}

// VerifyDummy runs a full-cost comparison against the throwaway hash and
// always fails. Called on the unknown-username path so its duration is
// indistinguishable from a wrong-secret attempt.
func (v *CredentialVerifier) VerifyDummy(presented string) {
	_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(presented))
}

// Hash produces a salted hash of secret at the fixed cost. Two calls with
// the same secret yield different hashes; both verify against it.
func (v *CredentialVerifier) Hash(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
