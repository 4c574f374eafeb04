package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid game token")
)

const tokenPrefix = "mf_"

// Service issues and checks the owner tokens of hosted games.
// Only a bcrypt hash of each token is ever stored.
type Service struct {
	cost int
}

// Config holds configuration for the auth service
type Config struct {
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		BcryptCost: bcrypt.DefaultCost,
	}
}

// New creates a new AuthService
func New(cfg Config) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}
	return &Service{
		cost: cfg.BcryptCost,
	}
}

// IssueToken generates a new owner token and the hash to persist for it
func (s *Service) IssueToken() (token string, hash string, err error) {
	token = generateToken()

	h, err := bcrypt.GenerateFromPassword([]byte(token), s.cost)
	if err != nil {
		return "", "", fmt.Errorf("hashing token: %w", err)
	}
	return token, string(h), nil
}

// Verify checks token against a hash produced by IssueToken
func (s *Service) Verify(hash, token string) error {
	if hash == "" || token == "" {
		return ErrInvalidToken
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// generateToken generates 24 random bytes, URL-safe encoded
func generateToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return tokenPrefix + base64.RawURLEncoding.EncodeToString(b)
}
