package coraapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
)

// DefaultTokenPath returns the path of the stored API token.
func DefaultTokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".cora", "auth", "token.json"), nil
}

// LoadToken loads a previously saved token. A missing file yields nil.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s and store the token again): %w", path, err)
	}
	return &tok, nil
}

// SaveToken atomically persists an access token with owner-only permissions.
func SaveToken(path, accessToken string) error {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return fmt.Errorf("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// ClearToken removes the stored token. A missing file is not an error.
func ClearToken(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// ResolveToken picks the configured token, falling back to the stored one.
func ResolveToken(configured, path string) (string, error) {
	if t := strings.TrimSpace(configured); t != "" {
		return t, nil
	}
	if path == "" {
		return "", nil
	}
	tok, err := LoadToken(path)
	if err != nil || tok == nil {
		return "", err
	}
	return tok.AccessToken, nil
}
