package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, forged, and wrong-algorithm tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload bound inside an issued token. Tokens carry no
// expiry claim; an issued token stays valid for as long as the signing
// key does.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// TokenService signs user ids into bearer tokens and resolves presented
// tokens back to user ids. The signing key is fixed for the process
// lifetime.
type TokenService struct {
	secret []byte
}

// NewTokenService builds a token service around the configured secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token bound to userID.
func (s *TokenService) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: userID})
	return token.SignedString(s.secret)
}

// Verify decodes and checks a presented token, returning the user id it
// is bound to. Only HS256 is accepted; a token claiming any other
// algorithm is a forgery attempt and is rejected.
func (s *TokenService) Verify(tokenString string) (string, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
