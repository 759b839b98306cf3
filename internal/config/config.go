// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/openelexva/reconcile/internal/consolidate"
)

// Pipeline holds the settings shared by the processing commands,
// resolved from viper with defaults applied.
type Pipeline struct {
	DatabasePath     string
	CalendarPath     string
	EquivalencesPath string
	FuzzyThreshold   int
	MinFolderYear    int
	IncludeLegacy    bool
}

// LoadPipeline reads the pipeline settings from viper.
func LoadPipeline() Pipeline {
	cfg := Pipeline{
		DatabasePath:     viper.GetString("database.path"),
		CalendarPath:     ExpandPath(viper.GetString("calendar.path")),
		EquivalencesPath: ExpandPath(viper.GetString("equivalences.path")),
		FuzzyThreshold:   viper.GetInt("consolidate.fuzzy_threshold"),
		MinFolderYear:    viper.GetInt("ingest.min_folder_year"),
		IncludeLegacy:    viper.GetBool("ingest.include_legacy"),
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "$HOME/.local/share/reconcile/reconcile.db"
	}
	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)
	if cfg.FuzzyThreshold <= 0 {
		cfg.FuzzyThreshold = consolidate.DefaultFuzzyThreshold
	}
	return cfg
}

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
