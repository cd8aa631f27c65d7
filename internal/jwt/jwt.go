// Package jwt signs and validates the session tokens players use to resume
// their seat on a new connection.
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"cardroom-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "cardroom-server"

// Audience is the intended JWT audience
const Audience = "cardroom-players"

var signingKey []byte

func key() []byte {
	if signingKey == nil {
		signingKey = []byte(config.Instance().SessionSecret)
	}

	return signingKey
}

// SetSigningKey overrides the configured signing key
// this method should only be called once, before any tokens are signed.
func SetSigningKey(secret string) {
	signingKey = []byte(secret)
}

// Sign will sign a session token for the player ID
func Sign(playerID string) (string, error) {
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  playerID,
	})

	return token.SignedString(key())
}

// ValidPlayerID will validate a signed session token and return the player ID
func ValidPlayerID(signedString string) (string, error) {
	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return key(), nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwtgo.RegisteredClaims)
	if !ok {
		return "", fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	if !containsAudience(claims.Audience, Audience) {
		return "", errors.New("invalid audience")
	}

	if claims.Issuer != Issuer {
		return "", errors.New("invalid issuer")
	}

	if claims.Subject == "" {
		return "", errors.New("missing subject")
	}

	return claims.Subject, nil
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
