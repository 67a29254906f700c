package test

import (
	"math/rand/v2"
	"strings"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns a pseudo-random alphanumeric string of length
// within [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	length := minLen + rand.IntN(maxLen-minLen+1)

	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(asciiLetters[rand.IntN(len(asciiLetters))])
	}
	return b.String()
}

// RandomUsername returns a name accepted by registration validation.
func RandomUsername() string {
	return "donor_" + RandomASCIIString(4, 12)
}

// RandomEmail returns a lower-case address under example.com.
func RandomEmail() string {
	return strings.ToLower(RandomASCIIString(6, 20)) + "@example.com"
}
