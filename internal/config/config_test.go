package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, ":5175", cfg.Addr())
	assert.Equal(t, "data/words.db", cfg.DBPath)
	assert.Equal(t, 336*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "wordle_player", cfg.CookieName)
	assert.False(t, cfg.KeepScoreOnReset)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PORT":                "9000",
		"LOG_LEVEL":           "debug",
		"SESSION_TTL":         "15m",
		"KEEP_SCORE_ON_RESET": "true",
		"WORDS_DIR":           "/srv/words",
	})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.KeepScoreOnReset)
	assert.Equal(t, "/srv/words", cfg.WordsDir)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad duration": {"SESSION_TTL": "soon"},
		"zero ttl":     {"SESSION_TTL": "0s"},
		"negative ttl": {"TOKEN_TTL": "-1h"},
		"bad bool":     {"COOKIE_SECURE": "perhaps"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(vars)
			assert.Error(t, err)
		})
	}
}

func TestLevel_Unknown(t *testing.T) {
	c := &Config{LogLevel: "loud"}
	assert.Equal(t, zerolog.InfoLevel, c.Level())
}
