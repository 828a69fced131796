package services

import (
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// AuthService stands in for the platform's identity layer: it mints tokens
// that bind a caller to an opaque principal string and resolves that
// principal back out of a presented token.
type AuthService struct {
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which an identity token is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// IssueToken mints an identity token for the given principal. An empty
// principal gets a fresh random one, the way an anonymous caller would.
// It returns the token and the principal it is bound to.
func (s *AuthService) IssueToken(principal string) (string, string, error) {
	if principal == "" {
		principal = uuid.New().String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"identity": principal,
		"exp":      time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":      time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, principal, nil
}

// ResolveIdentity parses and validates an identity token, returning the
// caller principal it carries.
func (s *AuthService) ResolveIdentity(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	identity, ok := claims["identity"].(string)
	if !ok || identity == "" {
		return "", fmt.Errorf("token carries no identity claim")
	}
	return identity, nil
}
