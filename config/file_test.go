package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToMap(t *testing.T) {
	t.Parallel()

	flat, err := ParseToMap([]byte(`
random:
  jitter_cycles_min: 500
  ambient:
    cipher: serpent
verbose: true
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"random/jitter_cycles_min": float64(500),
		"random/ambient/cipher":    "serpent",
		"verbose":                  true,
	}, flat)

	// json is yaml
	flat, err = ParseToMap([]byte(`{"a": {"b": "c"}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a/b": "c"}, flat)

	_, err = ParseToMap([]byte("a: [b"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	registerTestOptions(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
test:
  cipher: serpent
  cycles: 4000
`), 0o600))

	require.NoError(t, LoadFile(path))
	assert.Equal(t, "serpent", GetAsString("test/cipher", "")())
	assert.Equal(t, int64(4000), GetAsInt("test/cycles", 0)())

	assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
