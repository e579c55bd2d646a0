package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

// TokenTTL is the fixed validity window for issued bearer tokens.
const TokenTTL = 24 * time.Hour

// TokenService issues and verifies the signed bearer tokens guarding
// mutating newsletter operations.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
	}
}

// Issue signs a token carrying the principal's email, valid for TokenTTL.
func (ts *TokenService) Issue(email string) (string, error) {
	if len(ts.secret) == 0 {
		return "", &visiontech.Error{
			Code: visiontech.ErrInternal,
			Op:   "Issue",
			Err:  errors.New("no signing secret configured"),
		}
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	})

	signed, err := tok.SignedString(ts.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify validates a bearer token and returns the principal's email. A
// missing secret is a misconfiguration (internal), anything wrong with the
// token itself is the caller's fault (unauthorized).
func (ts *TokenService) Verify(tokenString string) (string, error) {
	if len(ts.secret) == 0 {
		return "", &visiontech.Error{
			Code: visiontech.ErrInternal,
			Op:   "Verify",
			Err:  errors.New("no signing secret configured"),
		}
	}

	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil {
		return "", &visiontech.Error{
			Code:    visiontech.ErrUnauthorized,
			Message: "Invalid or expired token",
			Op:      "Verify",
			Err:     err,
		}
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !tok.Valid || !ok {
		return "", &visiontech.Error{
			Code:    visiontech.ErrUnauthorized,
			Message: "Invalid token payload",
			Op:      "Verify",
		}
	}

	email, _ := claims["email"].(string)
	return email, nil
}
