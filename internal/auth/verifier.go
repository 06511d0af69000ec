package auth

import (
	"fmt"

	"gestionrecursos/internal/shared"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the decoded caller identity the auth gate attaches to
// authenticated requests.
type Identity struct {
	Subject string `json:"uid"`
	Email   string `json:"email"`
}

// Claims includes the registered claims plus the email claim issued by the
// identity provider.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Verifier checks a bearer credential and yields the caller identity.
type Verifier interface {
	Verify(tokenString string) (*Identity, error)
}

// JWTVerifier validates HMAC-signed tokens against a shared secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

func (v *JWTVerifier) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Ensure the signing method is HMAC
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, shared.ErrInvalidToken
	}
	// Ownership scoping keys off the email claim, so a token without one
	// is unusable even when the signature checks out.
	if claims.Email == "" {
		return nil, shared.ErrInvalidToken
	}
	return &Identity{Subject: claims.Subject, Email: claims.Email}, nil
}
