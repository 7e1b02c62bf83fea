package auth

import (
	"os"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	RoleEmployee  = "EMPLOYEE"
	RoleAdmin     = "ADMIN"
	RoleDashboard = "DASHBOARD"
	RoleQRCode    = "QRCODE"
)

type ctxKey int

// Key is how auth claims are stored/retrieved from a context.Context.
const Key ctxKey = 1

// Claims is the payload carried by every signed token.
type Claims struct {
	jwt.StandardClaims
	UserId int    `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"type"`
}

// Authorized reports whether the claims carry one of the wanted roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// Auth validates tokens issued by commands.GenToken.
type Auth struct {
	privateKeyPath string
}

func New(privateKeyPath string) (*Auth, error) {
	if _, err := os.Stat(privateKeyPath); err != nil {
		return nil, errors.Wrap(err, "reading private key")
	}
	return &Auth{privateKeyPath: privateKeyPath}, nil
}

// ValidateToken parses and verifies the signature of a token.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	keyData, err := os.ReadFile(a.privateKeyPath)
	if err != nil {
		return Claims{}, errors.Wrap(err, "reading private key")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing private key")
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return &privateKey.PublicKey, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	return claims, nil
}
