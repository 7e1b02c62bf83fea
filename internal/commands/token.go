package commands

import (
	"os"
	"time"

	"workforce/backend/internal/auth"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	accessTokenDuration  = 12 * time.Hour
	refreshTokenDuration = 30 * 24 * time.Hour
)

// TokenClaims is the identity a freshly issued token pair is minted for.
type TokenClaims struct {
	ID   int
	Role string
}

// GenToken issues an access/refresh token pair signed with the RSA key at
// privateKeyPath.
func GenToken(userClaims TokenClaims, privateKeyPath string) (string, string, error) {
	keyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return "", "", errors.Wrap(err, "reading private key")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return "", "", errors.Wrap(err, "parsing private key")
	}

	now := time.Now()

	accessClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(accessTokenDuration).Unix(),
		},
		UserId: userClaims.ID,
		Role:   userClaims.Role,
		Type:   "access",
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, accessClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(refreshTokenDuration).Unix(),
		},
		UserId: userClaims.ID,
		Role:   userClaims.Role,
		Type:   "refresh",
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, refreshClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// VerifyTokens checks an access/refresh pair belongs together and the refresh
// token is still valid. The access token may already be expired.
func VerifyTokens(accessToken, refreshToken, privateKeyPath string) (*auth.Claims, *auth.Claims, error) {
	keyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading private key")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing private key")
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return &privateKey.PublicKey, nil
	}

	var accessClaims auth.Claims
	if _, err = jwt.ParseWithClaims(accessToken, &accessClaims, keyFunc); err != nil {
		// Expired access tokens are the whole point of refresh.
		if ve, ok := err.(*jwt.ValidationError); !ok || ve.Errors != jwt.ValidationErrorExpired {
			return nil, nil, errors.Wrap(err, "parsing access token")
		}
	}

	var refreshClaims auth.Claims
	token, err := jwt.ParseWithClaims(refreshToken, &refreshClaims, keyFunc)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing refresh token")
	}
	if !token.Valid || refreshClaims.Type != "refresh" {
		return nil, nil, errors.New("invalid refresh token")
	}

	if accessClaims.UserId != refreshClaims.UserId {
		return nil, nil, errors.New("token pair mismatch")
	}

	return &accessClaims, &refreshClaims, nil
}
