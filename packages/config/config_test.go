package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.Zero(t, c.Timeout, "default is no timeout")
	assert.True(t, c.GetFollowRedirects())
	assert.True(t, c.GetValidateSSL())
	assert.False(t, c.GetNoColor())
	assert.Equal(t, 10, c.MaxRedirects)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".curlscope.config.json")
	content := `{
		"timeout": 5000,
		"followRedirects": false,
		"headers": {"User-Agent": "curlscope"},
		"rateLimit": 2.5
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 5000, c.Timeout)
	assert.False(t, c.GetFollowRedirects())
	assert.Equal(t, "curlscope", c.Headers["User-Agent"])
	assert.Equal(t, 2.5, c.RateLimit)
	assert.True(t, c.GetValidateSSL(), "untouched fields keep defaults")
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".curlscope.config.yaml")
	content := "timeout: 3000\nvalidateSSL: false\nheaders:\n  Accept: application/json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 3000, c.Timeout)
	assert.False(t, c.GetValidateSSL())
	assert.Equal(t, "application/json", c.Headers["Accept"])
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestFindAndLoadConfig_MissingFallsBackToDefaults(t *testing.T) {
	c, err := FindAndLoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Zero(t, c.Timeout)
	assert.True(t, c.GetFollowRedirects())
}

func TestFindAndLoadConfig_DiscoversFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "curlscope.config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timeout": 1234}`), 0o644))

	c, err := FindAndLoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, 1234, c.Timeout)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	base.Headers = map[string]string{"A": "1"}

	override := &Config{
		Timeout:         9000,
		FollowRedirects: boolPtr(false),
		Headers:         map[string]string{"B": "2"},
	}

	merged := base.Merge(override)

	assert.Equal(t, 9000, merged.Timeout)
	assert.False(t, merged.GetFollowRedirects())
	assert.Equal(t, "1", merged.Headers["A"])
	assert.Equal(t, "2", merged.Headers["B"])
	assert.True(t, merged.GetValidateSSL())

	// nil merge is a no-op
	assert.Equal(t, merged, merged.Merge(nil))
}

func TestClientOptions(t *testing.T) {
	c := DefaultConfig()
	c.Timeout = 1000
	c.Proxy = "http://localhost:8080"
	c.Headers = map[string]string{"X": "y"}
	c.RateLimit = 5

	opts := c.ClientOptions()

	// follow + ssl + timeout + maxRedirects + proxy + headers + rate limit
	assert.Len(t, opts, 7)
}
