package visiontech

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"
)

// UnsubscribeTokenLength is the length of the hex-encoded token (32 random
// bytes). The token is the sole capability for self-service unsubscribe, so
// it has to be unguessable across the whole subscriber population.
const UnsubscribeTokenLength = 64

// NewUnsubscribeToken returns a fresh unsubscribe token. An entropy-source
// failure is not retryable; it fails the subscriber creation outright.
func NewUnsubscribeToken() (string, error) {
	b := make([]byte, UnsubscribeTokenLength/2)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return hex.EncodeToString(b), nil
}
