// Package config handles global configuration and data file locations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultDataDir     = "data"
	ListingFile        = "paper_listing.tsv"
	UpdatedListingFile = "paper_listing_updated.tsv"
	MappingFile        = "paper_listing.json"
	TokenFile          = "token.txt"
)

// Environment variables consulted before the config file.
const (
	EnvToken    = "OPENCITATIONS_TOKEN"
	EnvDataDir  = "PAPERSTATS_DATA_DIR"
	EnvLogLevel = "LOG_LEVEL"
)

// ErrNoToken is returned when no access token can be found.
var ErrNoToken = errors.New("no OpenCitations access token")

// ListingPath returns the path to the raw listing in dataDir.
func ListingPath(dataDir string) string {
	return filepath.Join(dataDir, ListingFile)
}

// UpdatedListingPath returns the path to the enriched listing in dataDir.
func UpdatedListingPath(dataDir string) string {
	return filepath.Join(dataDir, UpdatedListingFile)
}

// MappingPath returns the path to the column mapping in dataDir.
func MappingPath(dataDir string) string {
	return filepath.Join(dataDir, MappingFile)
}

// TokenPath returns the path to the token file in dataDir.
func TokenPath(dataDir string) string {
	return filepath.Join(dataDir, TokenFile)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

// LoadToken reads an access token from path. Surrounding whitespace is
// stripped; a missing or blank file yields ErrNoToken.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s not found", ErrNoToken, path)
		}
		return "", fmt.Errorf("reading token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrNoToken, path)
	}
	return token, nil
}
