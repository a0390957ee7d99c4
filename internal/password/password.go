package password

import "golang.org/x/crypto/bcrypt"

// Package password wraps the one-way hashing primitive used for secret
// fields. Which fields are secret is declared per entity in the service
// descriptors; this package only hashes and verifies.

// DefaultCost is the bcrypt cost factor applied when the configuration does
// not override it.
const DefaultCost = 10

// Hash returns the salted bcrypt hash of plain. A non-positive cost falls
// back to DefaultCost.
func Hash(plain string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches the stored bcrypt hash.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
