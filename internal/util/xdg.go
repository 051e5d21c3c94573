package util

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = "labstats"

// DataPath joins elem onto the labstats data directory. LABSTATS_DATA_DIR
// wins over XDG_DATA_HOME, which wins over ~/.local/share.
func DataPath(elem ...string) (string, error) {
	base, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{base}, elem...)...), nil
}

func dataDir() (string, error) {
	if dir := os.Getenv("LABSTATS_DATA_DIR"); dir != "" {
		return dir, nil
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", appDir), nil
}
