package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredentials is returned for a failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned for expired or malformed tokens.
var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = 24 * time.Hour

// Claims is the token payload: who logged in and which household the
// token is scoped to.
type Claims struct {
	Username    string `json:"username"`
	HouseholdID string `json:"household_id"`
	jwt.RegisteredClaims
}

// Service issues and verifies API bearer tokens.
type Service struct {
	secret      []byte
	username    string
	password    string
	householdID string
}

func NewService(secret, username, password, householdID string) *Service {
	return &Service{
		secret:      []byte(secret),
		username:    username,
		password:    password,
		householdID: householdID,
	}
}

// Login checks the credentials and returns a signed token.
func (s *Service) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username:    username,
		HouseholdID: s.householdID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims.
func (s *Service) Verify(tokenString string) (Claims, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
