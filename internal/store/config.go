package store

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultConfigFileName matches what the display reads from the SD card root.
	DefaultConfigFileName = "config.json"

	settingsFileName = "settings.yaml"
	journalFileName  = "history.sqlite"
	logFileName      = "countdown.log"
)

// ConfigDir is where countdown keeps its own state (settings, history, logs).
func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.countdown).
	if v := strings.TrimSpace(os.Getenv("COUNTDOWN_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".countdown"), nil
}

func SettingsPath() (string, error) {
	return inConfigDir(settingsFileName)
}

func JournalPath() (string, error) {
	return inConfigDir(journalFileName)
}

func LogPath() (string, error) {
	return inConfigDir(logFileName)
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
