package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("MINEFIELD_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("MINEFIELD_TOKEN"),
		TokenFile: getEnvOrDefault("MINEFIELD_TOKEN_FILE", defaultTokenFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// TokenFor returns the owner token to use for a game.
// An explicit token wins over the token file.
func (c *Config) TokenFor(gameID string) (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}

	tokens, err := c.loadTokens()
	if err != nil {
		return "", err
	}
	return tokens[gameID], nil
}

// SaveToken records the owner token of a game in the token file
func (c *Config) SaveToken(gameID, token string) error {
	tokens, err := c.loadTokens()
	if err != nil {
		return err
	}
	tokens[gameID] = token
	return c.saveTokens(tokens)
}

// ForgetToken removes a game's token from the token file
func (c *Config) ForgetToken(gameID string) error {
	tokens, err := c.loadTokens()
	if err != nil {
		return err
	}
	if _, ok := tokens[gameID]; !ok {
		return nil
	}
	delete(tokens, gameID)
	return c.saveTokens(tokens)
}

func (c *Config) loadTokens() (map[string]string, error) {
	tokens := make(map[string]string)

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tokens, nil // No token file is fine
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("reading token file %s: %w", c.TokenFile, err)
	}
	return tokens, nil
}

func (c *Config) saveTokens(tokens map[string]string) error {
	dir := filepath.Dir(c.TokenFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.TokenFile, data, 0600)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".minefield/tokens.json"
	}
	return filepath.Join(home, ".minefield", "tokens.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
