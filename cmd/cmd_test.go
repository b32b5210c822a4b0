package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SvenDH/inkwell/choice/wschoice"
)

const testCatalog = `
- id: flyer
  name: Flyer
  type: Character
  strength: 1
  willpower: 3
  text: Evasive
- id: odd
  name: Odd
  type: Character
  strength: 2
  willpower: 3
  text: "Evasive\nDo a little dance."
- id: bolt
  name: Bolt
  type: Action
  text: Deal 2 damage to chosen character.
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { listPatterns = false })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCompileCommand(t *testing.T) {
	out, err := run(t, "compile", "--catalog", writeCatalog(t), "flyer", "bolt")
	require.NoError(t, err)
	assert.Contains(t, out, "Flyer (flyer)\n  flyer-0: keyword evasive")
	assert.Contains(t, out, "Bolt (bolt)\n  bolt-0: ")
	assert.NotContains(t, out, "Odd")

	_, err = run(t, "compile", "--catalog", writeCatalog(t), "missing")
	assert.ErrorContains(t, err, `card "missing"`)
}

func TestCompilePatterns(t *testing.T) {
	out, err := run(t, "compile", "--patterns")
	require.NoError(t, err)
	assert.Contains(t, out, "activated\tcost_dash_effect\n")
	assert.Contains(t, out, "static\tsing_cost\n")
}

func TestCoverageCommand(t *testing.T) {
	out, err := run(t, "coverage", "--catalog", writeCatalog(t), "--driver", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "coverage: 75.0%")
	assert.Contains(t, out, `"Do a little dance."`)
}

func TestCoverageCommandSQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "misses.db")
	out, err := run(t, "coverage", "--catalog", writeCatalog(t), "--driver", "sqlite", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "misses: 1")
	assert.FileExists(t, db)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("INKWELL_SERVE_JWT_SECRET", "a-long-enough-secret")
	out, err := run(t, "token", "p1")
	require.NoError(t, err)

	claims, err := wschoice.NewTokens("a-long-enough-secret", 0).Validate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "p1", claims.Player)
}

func TestInvalidConfig(t *testing.T) {
	_, err := run(t, "compile", "--log-level", "loud")
	assert.ErrorContains(t, err, "log.level")
	_, err = run(t, "compile", "--patterns", "--log-level", "info")
	require.NoError(t, err)
}

func TestPlayCommand(t *testing.T) {
	out, err := run(t, "play", "--catalog", writeCatalog(t), "--bot", "--board", "1", "bolt")
	require.NoError(t, err)
	assert.Contains(t, out, "p1 plays Bolt\n")
	assert.Contains(t, out, "p1 lore 0, hand 0, deck 0, ink 2/2, discard 1\n")
	assert.Contains(t, out, "damage 2")

	_, err = run(t, "play", "--catalog", writeCatalog(t), "--bot", "nope")
	assert.ErrorContains(t, err, `card "nope"`)
}
