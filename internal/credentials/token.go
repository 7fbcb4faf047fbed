package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DefaultTokenFile is resolved against the working directory.
const DefaultTokenFile = "api_token"

var (
	ErrTokenFileMissing = errors.New("api token file not found")
	ErrTokenEmpty       = errors.New("api token file is empty")
)

// ReadToken reads the Toggl API token from a plaintext file.
func ReadToken(path string) (string, error) {
	if path == "" {
		path = DefaultTokenFile
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("reading API token from %q: %w", path, ErrTokenFileMissing)
		}
		return "", fmt.Errorf("reading API token from %q: %w", path, err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", fmt.Errorf("reading API token from %q: %w", path, ErrTokenEmpty)
	}
	return token, nil
}
