// Package auth provides the JWT claims model and token validation used
// by the authentication middleware and the repositories' claim checks.
package auth

import (
	"context"
	"crypto/rsa"
	"os"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Application roles. BU-scoped authority on top of these is decided by
// the permission predicates.
const (
	RoleAdmin   = "admin"
	RoleLeader  = "leader"
	RoleManager = "manager"
	RoleMember  = "member"
	RoleViewer  = "viewer"
	RoleArtist  = "artist"
)

// ctxKey is how claims are stored in a context.Context.
type ctxKey int

// Key is used to retrieve the stored claims.
const Key ctxKey = 1

// Claims is the payload carried by every token.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	BUCode string `json:"bu_code"`
	Type   string `json:"type"`
	jwt.StandardClaims
}

// Authorized reports whether the claims hold one of the given roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// SetClaims stores the claims in the context.
func SetClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, Key, claims)
}

// GetClaims returns the claims from the context.
func GetClaims(ctx context.Context) (Claims, error) {
	claims, ok := ctx.Value(Key).(Claims)
	if !ok {
		return Claims{}, errors.New("claims missing from context")
	}
	return claims, nil
}

// Auth validates tokens against the public half of the signing key.
type Auth struct {
	publicKey *rsa.PublicKey
}

// New loads the RSA private key at privateKeyPath and keeps its public
// half for validation.
func New(privateKeyPath string) (*Auth, error) {
	pem, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading private key")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(pem)
	if err != nil {
		return nil, errors.Wrap(err, "parsing private key")
	}

	return &Auth{publicKey: &privateKey.PublicKey}, nil
}

// ValidateToken parses and verifies an access token.
func (a *Auth) ValidateToken(tokenString string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.publicKey, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if claims.Type != "" && claims.Type != "access" {
		return Claims{}, errors.New("not an access token")
	}

	return claims, nil
}
