package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

const testSecret = "da02e221bc331c9875c5e1299fa8d765"

func TestIssueAndVerify(t *testing.T) {
	ts := NewTokenService(testSecret)

	token, err := ts.Issue("admin@example.com")
	require.NoError(t, err)

	email, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", email)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokenService("other-secret").Issue("admin@example.com")
	require.NoError(t, err)

	_, err = NewTokenService(testSecret).Verify(token)
	require.Error(t, err)
	assert.Equal(t, visiontech.ErrUnauthorized, visiontech.ErrorCode(err))
}

func TestVerifyMalformed(t *testing.T) {
	_, err := NewTokenService(testSecret).Verify("not-a-token")
	require.Error(t, err)
	assert.Equal(t, visiontech.ErrUnauthorized, visiontech.ErrorCode(err))
}

func TestVerifyExpired(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "admin@example.com",
		"iat":   time.Now().Add(-48 * time.Hour).Unix(),
		"exp":   time.Now().Add(-24 * time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenService(testSecret).Verify(signed)
	require.Error(t, err)
	assert.Equal(t, visiontech.ErrUnauthorized, visiontech.ErrorCode(err))
}

func TestNoSecretConfigured(t *testing.T) {
	ts := NewTokenService("")

	_, err := ts.Issue("admin@example.com")
	require.Error(t, err)
	assert.Equal(t, visiontech.ErrInternal, visiontech.ErrorCode(err))

	_, err = ts.Verify("whatever")
	require.Error(t, err)
	assert.Equal(t, visiontech.ErrInternal, visiontech.ErrorCode(err))
}
