package store

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir is the default workspace directory.
func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.clarity-board).
	if v := strings.TrimSpace(os.Getenv("CLARITY_BOARD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".clarity-board"), nil
}
