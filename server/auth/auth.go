// Package auth issues and validates the access tokens used by the HTTP API.
package auth

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// Issuer is the issuer of the access token.
	Issuer = "dayfold"
	// KeyID is the key ID written into the token header.
	KeyID = "v1"
	// AccessTokenAudience is the audience of the access token.
	AccessTokenAudience = "user.access-token"
	// AccessTokenDuration is the lifetime of a generated access token.
	AccessTokenDuration = 7 * 24 * time.Hour
)

// ClaimsMessage is the claims message embedded in the access token.
type ClaimsMessage struct {
	jwt.RegisteredClaims
}

// GenerateAccessToken generates an access token for the given user. A zero
// expiration time produces a token that never expires.
func GenerateAccessToken(userID int64, expirationTime time.Time, secret []byte) (string, error) {
	registeredClaims := jwt.RegisteredClaims{
		Issuer:   Issuer,
		Audience: jwt.ClaimStrings{AccessTokenAudience},
		IssuedAt: jwt.NewNumericDate(time.Now()),
		Subject:  strconv.FormatInt(userID, 10),
		ID:       uuid.New().String(),
	}
	if !expirationTime.IsZero() {
		registeredClaims.ExpiresAt = jwt.NewNumericDate(expirationTime)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsMessage{RegisteredClaims: registeredClaims})
	token.Header["kid"] = KeyID
	return token.SignedString(secret)
}

// Authenticate validates the bearer token from an Authorization header and
// returns the user ID it was issued for.
func Authenticate(authorizationHeader string, secret []byte) (int64, error) {
	token, ok := strings.CutPrefix(authorizationHeader, "Bearer ")
	if !ok || token == "" {
		return 0, errors.New("missing bearer token")
	}

	claims := &ClaimsMessage{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(Issuer), jwt.WithAudience(AccessTokenAudience))
	if err != nil {
		return 0, errors.Wrap(err, "invalid access token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "malformed token subject")
	}
	return userID, nil
}
