package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a signup password with the configured bcrypt cost.
// A cost outside bcrypt's supported range (a typo'd BCRYPT_COST, say)
// falls back to the library default instead of failing signup.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether the candidate password matches the
// stored hash. Used by login only; it never reveals why a mismatch
// occurred.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
