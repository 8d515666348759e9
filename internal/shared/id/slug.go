// Package id provides URL-safe random identifier generation.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// SlugLength is the length of generated portfolio slugs.
	SlugLength = 8
)

// Generate creates a cryptographically random Base62 string of the given
// length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = SlugLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// NewSlug creates a random portfolio slug.
func NewSlug() (string, error) {
	return Generate(SlugLength)
}
