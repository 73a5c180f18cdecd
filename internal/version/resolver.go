// Package version resolves the release version from the tracked version file.
package version

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingVersionFile indicates the tracked version file is absent or empty.
// A run halts on this before any cluster mutation occurs.
var ErrMissingVersionFile = errors.New("missing version file")

// Resolve reads the release version token from the tracked file at path.
// The token is trimmed of surrounding whitespace and is immutable for the
// lifetime of the run.
func Resolve(path string) (string, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrMissingVersionFile, path)
		}
		return "", fmt.Errorf("failed to read version file %s: %w", path, err)
	}

	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", fmt.Errorf("%w: %s contains no version token", ErrMissingVersionFile, path)
	}

	return v, nil
}
