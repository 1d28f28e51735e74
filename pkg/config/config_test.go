package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8086", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 1*time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "matching", cfg.Metrics.Prefix)

	assert.Equal(t, 0.85, cfg.Matching.MinSimilarity)
	assert.Equal(t, 5, cfg.Matching.MaxSuggestions)
	assert.Equal(t, 0.95, cfg.Matching.AutoConfirmThreshold)
	assert.Equal(t, 50000, cfg.Import.MaxSpreadsheetRows)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("MATCH_MIN_SIMILARITY", "0.7")
	t.Setenv("MATCH_MAX_SUGGESTIONS", "10")
	t.Setenv("MATCH_AUTO_CONFIRM_THRESHOLD", "0.99")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("IMPORT_MAX_SPREADSHEET_ROWS", "1000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 0.7, cfg.Matching.MinSimilarity)
	assert.Equal(t, 10, cfg.Matching.MaxSuggestions)
	assert.Equal(t, 0.99, cfg.Matching.AutoConfirmThreshold)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 1000, cfg.Import.MaxSpreadsheetRows)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MATCH_MIN_SIMILARITY", "not-a-number")
	t.Setenv("MATCH_MAX_SUGGESTIONS", "many")
	t.Setenv("DB_CONN_MAX_LIFETIME", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.85, cfg.Matching.MinSimilarity)
	assert.Equal(t, 5, cfg.Matching.MaxSuggestions)
	assert.Equal(t, 1*time.Hour, cfg.Database.ConnMaxLifetime)
}
