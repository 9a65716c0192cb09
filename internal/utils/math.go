// Package utils holds small helpers shared by the raffle packages.
package utils

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
)

// SecureInt63n returns a uniform random value in [0, n) using crypto/rand
func SecureInt63n(n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("n must be positive, got %d", n)
	}
	v, err := crand.Int(crand.Reader, big.NewInt(n))
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}
