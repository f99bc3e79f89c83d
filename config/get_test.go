package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerTestOptions(t testing.TB) {
	t.Helper()

	for _, opt := range []*Option{
		{
			Name:            "Cipher",
			Key:             "test/cipher",
			Description:     "cipher for tests",
			ExpertiseLevel:  ExpertiseLevelDeveloper,
			OptType:         OptTypeString,
			DefaultValue:    "aes",
			ValidationRegex: "^(aes|serpent)$",
		},
		{
			Name:            "Cycles",
			Key:             "test/cycles",
			Description:     "cycles for tests",
			ExpertiseLevel:  ExpertiseLevelExpert,
			OptType:         OptTypeInt,
			DefaultValue:    2000,
			ValidationRegex: "^[1-9][0-9]{1,5}$",
		},
		{
			Name:           "Enabled",
			Key:            "test/enabled",
			Description:    "switch for tests",
			ExpertiseLevel: ExpertiseLevelUser,
			OptType:        OptTypeBool,
			DefaultValue:   false,
		},
	} {
		require.NoError(t, Register(opt))
	}
}

func TestGet(t *testing.T) {
	registerTestOptions(t)

	cipher := GetAsString("test/cipher", "none")
	cycles := GetAsInt("test/cycles", -1)
	enabled := GetAsBool("test/enabled", true)

	// registered defaults
	assert.Equal(t, "aes", cipher())
	assert.Equal(t, int64(2000), cycles())
	assert.False(t, enabled())

	// runtime defaults
	require.NoError(t, SetDefaultConfigOption("test/cycles", 3000))
	assert.Equal(t, int64(3000), cycles())

	// user values win
	err := SetConfig(map[string]interface{}{
		"test/cipher":  "serpent",
		"test/cycles":  float64(500), // as parsed from json
		"test/enabled": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "serpent", cipher())
	assert.Equal(t, int64(500), cycles())
	assert.True(t, enabled())

	// reset
	require.NoError(t, SetConfigOption("test/cycles", nil))
	assert.Equal(t, int64(3000), cycles())
	require.NoError(t, SetDefaultConfigOption("test/cycles", nil))
	assert.Equal(t, int64(2000), cycles())

	// unknown options use the fallback
	assert.Equal(t, int64(-1), GetAsInt("test/unknown", -1)())
}

func TestSetInvalid(t *testing.T) {
	registerTestOptions(t)

	err := SetConfigOption("test/cipher", "rot13")
	var valueErr *InvalidValueError
	require.ErrorAs(t, err, &valueErr)
	assert.Equal(t, "test/cipher", valueErr.Option)

	assert.Error(t, SetConfigOption("test/cycles", "many"))
	assert.Error(t, SetConfigOption("test/cycles", 1.5))
	assert.Error(t, SetConfigOption("test/cycles", 1))
	assert.ErrorIs(t, SetConfigOption("test/nope", 1), ErrUnknownOption)

	// all failures are reported, valid values are still applied
	err = SetConfig(map[string]interface{}{
		"test/cipher":  "rot13",
		"test/nope":    1,
		"test/enabled": true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.True(t, GetAsBool("test/enabled", false)())
	assert.Equal(t, "aes", GetAsString("test/cipher", "")())
}

func TestConcurrentGet(t *testing.T) {
	registerTestOptions(t)

	cycles := Concurrent.GetAsInt("test/cycles", -1)
	cipher := Concurrent.GetAsString("test/cipher", "none")
	enabled := Concurrent.GetAsBool("test/enabled", true)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				v := cycles()
				if v != 2000 && v != 4000 {
					t.Errorf("unexpected value %d", v)
					return
				}
				cipher()
				enabled()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		value := 2000
		if j%2 == 0 {
			value = 4000
		}
		require.NoError(t, SetConfigOption("test/cycles", value))
	}
	wg.Wait()

	require.NoError(t, SetConfigOption("test/cycles", nil))
	assert.Equal(t, int64(2000), cycles())
	assert.Equal(t, "aes", cipher())
	assert.False(t, enabled())
}

func BenchmarkGetAsIntCached(b *testing.B) {
	registerTestOptions(b)
	cycles := GetAsInt("test/cycles", -1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cycles()
	}
}

func BenchmarkGetAsIntRefetch(b *testing.B) {
	registerTestOptions(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		findIntValue("test/cycles", -1)
	}
}
