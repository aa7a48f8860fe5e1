package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Settings are user preferences for countdown itself (not the device config).
type Settings struct {
	// File is the config file opened when --file is not given.
	File string
	// LogLevel is one of debug|info|warn|error.
	LogLevel string
	// Format is the output format for scriptable commands (json|edn).
	Format string
	// Pretty makes saved config files and command output indented.
	Pretty bool
	// History records every save in the local history journal.
	History bool
	// HistoryLimit caps stored revisions per config file.
	HistoryLimit int
}

func DefaultSettings() Settings {
	return Settings{
		File:         DefaultConfigFileName,
		LogLevel:     "info",
		Format:       "json",
		History:      true,
		HistoryLimit: 50,
	}
}

// LoadSettings reads settings from path (or the default settings.yaml when path is empty)
// and applies COUNTDOWN_* environment overrides. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	def := DefaultSettings()

	v := viper.New()
	v.SetDefault("file", def.File)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("format", def.Format)
	v.SetDefault("pretty", def.Pretty)
	v.SetDefault("history", def.History)
	v.SetDefault("history_limit", def.HistoryLimit)

	v.SetEnvPrefix("COUNTDOWN")
	v.AutomaticEnv()

	if strings.TrimSpace(path) == "" {
		p, err := SettingsPath()
		if err != nil {
			return def, err
		}
		path = p
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return def, fmt.Errorf("read settings %s: %w", path, err)
		}
	}

	s := Settings{
		File:         strings.TrimSpace(v.GetString("file")),
		LogLevel:     strings.TrimSpace(v.GetString("log_level")),
		Format:       strings.TrimSpace(v.GetString("format")),
		Pretty:       v.GetBool("pretty"),
		History:      v.GetBool("history"),
		HistoryLimit: v.GetInt("history_limit"),
	}
	if s.File == "" {
		s.File = def.File
	}
	if s.Format == "" {
		s.Format = def.Format
	}
	if s.HistoryLimit <= 0 {
		s.HistoryLimit = def.HistoryLimit
	}
	return s, nil
}
