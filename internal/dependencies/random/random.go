package random

import (
	"crypto/rand"
	"math/big"
)

// Random generates board codes. Swapped for a queued fake in tests.
type Random interface {
	// String returns a random string of the given length drawn from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom draws from crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// String returns a random string of the given length drawn from alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			n = big.NewInt(0)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out)
}
