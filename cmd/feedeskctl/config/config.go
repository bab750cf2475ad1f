package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"feedesk/internal/client"
)

const (
	defaultAPIURL = "http://localhost:8080"
	tokenFileName = ".feedesk_token"
)

// Set from the root command's persistent flags.
var (
	ServerFlag string
	TokenFlag  string
)

// APIURL returns the API base URL: --server, then FEEDESK_API_URL, then the
// local default.
func APIURL() string {
	if ServerFlag != "" {
		return ServerFlag
	}
	if v := os.Getenv("FEEDESK_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// TokenPath is where login stores the token. FEEDESK_TOKEN_FILE overrides it.
func TokenPath() (string, error) {
	if v := os.Getenv("FEEDESK_TOKEN_FILE"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, tokenFileName), nil
}

func SaveToken(token string) error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// LoadToken returns --token, then FEEDESK_TOKEN, then the saved token file.
func LoadToken() (string, error) {
	if TokenFlag != "" {
		return TokenFlag, nil
	}
	if v := os.Getenv("FEEDESK_TOKEN"); v != "" {
		return v, nil
	}
	path, err := TokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("not logged in, run feedeskctl login first")
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// NewClient builds an authenticated API client.
func NewClient() (*client.Client, error) {
	token, err := LoadToken()
	if err != nil {
		return nil, err
	}
	return client.New(APIURL(), token), nil
}
