package commands

import (
	"os"
	"time"

	"erp/backend/internal/auth"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// GenToken issues an access/refresh token pair for the given claims,
// signed with the RSA key at privateKeyPath.
func GenToken(claims auth.Claims, privateKeyPath string) (accessToken, refreshToken string, err error) {
	pem, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return "", "", errors.Wrap(err, "reading private key")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(pem)
	if err != nil {
		return "", "", errors.Wrap(err, "parsing private key")
	}

	now := time.Now()

	access := claims
	access.Type = "access"
	access.IssuedAt = now.Unix()
	access.ExpiresAt = now.Add(accessTokenTTL).Unix()

	accessToken, err = jwt.NewWithClaims(jwt.SigningMethodRS256, access).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refresh := claims
	refresh.Type = "refresh"
	refresh.IssuedAt = now.Unix()
	refresh.ExpiresAt = now.Add(refreshTokenTTL).Unix()

	refreshToken, err = jwt.NewWithClaims(jwt.SigningMethodRS256, refresh).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// VerifyTokens validates a token pair during refresh. The access token
// may be expired; the refresh token must still be valid.
func VerifyTokens(accessToken, refreshToken, privateKeyPath string) (auth.Claims, auth.Claims, error) {
	pem, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "reading private key")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(pem)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "parsing private key")
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return &privateKey.PublicKey, nil
	}

	var accessClaims auth.Claims
	if _, err := jwt.ParseWithClaims(accessToken, &accessClaims, keyFunc); err != nil {
		// An expired access token is expected during refresh; any other
		// failure is not.
		validationErr, ok := err.(*jwt.ValidationError)
		if !ok || validationErr.Errors&jwt.ValidationErrorExpired == 0 {
			return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "parsing access token")
		}
	}

	var refreshClaims auth.Claims
	parsed, err := jwt.ParseWithClaims(refreshToken, &refreshClaims, keyFunc)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "parsing refresh token")
	}
	if !parsed.Valid || refreshClaims.Type != "refresh" {
		return auth.Claims{}, auth.Claims{}, errors.New("invalid refresh token")
	}

	if accessClaims.UserID != "" && accessClaims.UserID != refreshClaims.UserID {
		return auth.Claims{}, auth.Claims{}, errors.New("token pair mismatch")
	}

	return accessClaims, refreshClaims, nil
}
