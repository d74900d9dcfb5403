package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	journalFileName = "work_sessions.log"
	spriteDirName   = "sprites"
)

// AppDir returns the per-user directory holding settings, the session
// journal and imported sprite sets.
func AppDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

// JournalPath returns the session journal file path.
func JournalPath(appName string) (string, error) {
	dir, err := AppDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, journalFileName), nil
}

// SpriteRoot returns the directory for imported sprite sets. A non-empty
// override from the settings wins.
func SpriteRoot(appName, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	dir, err := AppDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, spriteDirName), nil
}
