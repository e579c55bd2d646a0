package visiontech

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnsubscribeToken(t *testing.T) {
	token, err := NewUnsubscribeToken()
	require.NoError(t, err)
	assert.Len(t, token, UnsubscribeTokenLength)

	_, err = hex.DecodeString(token)
	assert.NoError(t, err)
}

func TestNewUnsubscribeTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewUnsubscribeToken()
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestNewSubscriber(t *testing.T) {
	sub, err := NewSubscriber("  Foo@Gmail.COM ", "Foo")
	require.NoError(t, err)
	assert.Equal(t, "foo@gmail.com", sub.Email)
	assert.Equal(t, StatusActive, sub.Status)
	assert.Len(t, sub.UnsubscribeToken, UnsubscribeTokenLength)
	assert.Equal(t, FrequencyWeekly, sub.Preferences.Frequency)
	assert.False(t, sub.SignupDate.IsZero())
}
