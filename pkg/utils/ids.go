package utils

import (
	"crypto/rand"
	"io"
	"strings"

	"github.com/google/uuid"
)

const (
	alphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	digits       = "0123456789"

	// DefaultNanoIDLength is the length NanoID uses when none is given.
	DefaultNanoIDLength = 7
)

// NanoID returns a random alphanumeric identifier. The length defaults to
// DefaultNanoIDLength.
func NanoID(length ...int) string {
	n := DefaultNanoIDLength
	if len(length) > 0 && length[0] > 0 {
		n = length[0]
	}
	return randomString(alphanumeric, n)
}

// CustomID returns prefix followed by n random alphanumeric characters.
func CustomID(prefix string, n int) string {
	return prefix + randomString(alphanumeric, n)
}

// NumericID returns n random digits.
func NumericID(n int) string {
	return randomString(digits, n)
}

// CUID returns a collision-resistant, time-ordered identifier: a UUIDv7
// without dashes, prefixed with "c" so it never starts with a digit.
func CUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "c" + strings.ReplaceAll(id.String(), "-", "")
}

// UUID returns a random version 4 UUID string.
func UUID() string {
	return uuid.NewString()
}

func randomString(alphabet string, n int) string {
	if n <= 0 {
		return ""
	}
	// crypto/rand.Reader does not fail on supported platforms since Go 1.24.
	s, _ := sampleAlphabet(rand.Reader, alphabet, n)
	return s
}

// sampleAlphabet draws n uniformly distributed symbols from alphabet. Bytes
// at or above the largest multiple of len(alphabet) are discarded.
func sampleAlphabet(r io.Reader, alphabet string, n int) (string, error) {
	limit := 256 - 256%len(alphabet)
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return string(out), err
		}
		for _, c := range buf {
			if int(c) < limit && len(out) < n {
				out = append(out, alphabet[int(c)%len(alphabet)])
			}
		}
	}
	return string(out), nil
}
