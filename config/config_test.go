package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SvenDH/inkwell/config"
)

func TestLoadFromReader(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(`
log:
  level: debug
  format: json
catalog: cards.yaml
coverage:
  driver: memory
serve:
  addr: ":9000"
  jwt_secret: a-long-enough-secret
  token_ttl: 2h
`))
	require.NoError(t, err)
	assert.Equal(t, config.LogDebug, cfg.Log.Level)
	assert.Equal(t, "cards.yaml", cfg.Catalog)
	assert.Equal(t, "memory", cfg.Coverage.Driver)
	assert.Equal(t, 20, cfg.Coverage.Top)
	assert.Equal(t, ":9000", cfg.Serve.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Serve.TokenTTL)
	assert.True(t, cfg.Serve.Metrics)
}

func TestLoadFromReaderEmpty(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown key", "colour: blue\n", "field colour not found"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad format", "log:\n  format: xml\n", "log.format"},
		{"bad driver", "coverage:\n  driver: postgres\n", "coverage.driver"},
		{"missing path", "coverage:\n  driver: sqlite\n  path: \"\"\n", "coverage.path"},
		{"negative top", "coverage:\n  top: -1\n", "coverage.top"},
		{"short secret", "serve:\n  jwt_secret: short\n", "jwt_secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadFromReader(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"
	cfg.Coverage.Driver = "postgres"
	err := config.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "coverage.driver")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkwell.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: set1.yaml\n"), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "set1.yaml", cfg.Catalog)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Log.Format = "json"
	cfg.Log.Level = config.LogWarn
	log := cfg.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
