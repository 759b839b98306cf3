package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/openelexva/reconcile/internal/consolidate"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("RECONCILE_TEST_DIR", "/data/extracts")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "/var/lib/reconcile.db", want: "/var/lib/reconcile.db"},
		{name: "env var", in: "$RECONCILE_TEST_DIR/2024_07", want: "/data/extracts/2024_07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestLoadPipelineDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := LoadPipeline()
	assert.Contains(t, cfg.DatabasePath, "reconcile.db")
	assert.Equal(t, consolidate.DefaultFuzzyThreshold, cfg.FuzzyThreshold)
	assert.False(t, cfg.IncludeLegacy)
}

func TestLoadPipelineOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("database.path", "/tmp/test.db")
	viper.Set("consolidate.fuzzy_threshold", 90)
	viper.Set("ingest.min_folder_year", 2015)
	viper.Set("ingest.include_legacy", true)

	cfg := LoadPipeline()
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.Equal(t, 90, cfg.FuzzyThreshold)
	assert.Equal(t, 2015, cfg.MinFolderYear)
	assert.True(t, cfg.IncludeLegacy)
}
