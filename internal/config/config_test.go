package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T, tmpDir string) {
	t.Helper()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
	// godotenv skips keys that already exist in the environment, so these
	// must be fully unset, not set to "".
	for _, v := range []string{"ALEXA_COOKIE", "ALEXA_CSRF", "ALEXA_DOMAIN", "ECHOCTL_DEVICE", "ECHOCTL_CONFIG", "ECHOCTL_CACHE_TTL", "ECHOCTL_LOG_LEVEL"} {
		t.Setenv(v, "") // register restore
		os.Unsetenv(v)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	tmpDir := t.TempDir()
	isolateEnv(t, tmpDir)

	content := `{
		// comments are allowed
		"domain": "alexa.amazon.de",
		"defaultDevice": "Salon Echo",
		"deviceCacheTTLSeconds": 120,
		"preload": ["devices", "play"]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "echoctl.jsonc"), []byte(content), 0644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "alexa.amazon.de", cfg.Domain)
	assert.Equal(t, "Salon Echo", cfg.DefaultDevice)
	assert.Equal(t, 120, cfg.DeviceCacheTTLSeconds)
	assert.Equal(t, []string{"devices", "play"}, cfg.Preload)
}

func TestLoadDefaultDomain(t *testing.T) {
	tmpDir := t.TempDir()
	isolateEnv(t, tmpDir)

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, DefaultDomain, cfg.Domain)
}

func TestEnvOverridesWin(t *testing.T) {
	tmpDir := t.TempDir()
	isolateEnv(t, tmpDir)

	content := `{"domain": "alexa.amazon.de", "cookie": "from-file"}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "echoctl.json"), []byte(content), 0644))

	t.Setenv("ALEXA_COOKIE", "from-env")
	t.Setenv("ALEXA_DOMAIN", "alexa.amazon.co.uk")

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Cookie)
	assert.Equal(t, "alexa.amazon.co.uk", cfg.Domain)
}

func TestEnvInterpolation(t *testing.T) {
	tmpDir := t.TempDir()
	isolateEnv(t, tmpDir)

	t.Setenv("TEST_ALEXA_COOKIE", "secret-cookie")
	content := `{"cookie": "{env:TEST_ALEXA_COOKIE}"}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "echoctl.json"), []byte(content), 0644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "secret-cookie", cfg.Cookie)
}

func TestDotEnvLoaded(t *testing.T) {
	tmpDir := t.TempDir()
	isolateEnv(t, tmpDir)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("ALEXA_CSRF=tok123\n"), 0644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "tok123", cfg.CSRF)
}

func TestConfigFileOverride(t *testing.T) {
	tmpDir := t.TempDir()
	isolateEnv(t, tmpDir)

	override := filepath.Join(tmpDir, "custom.json")
	require.NoError(t, os.WriteFile(override, []byte(`{"defaultDevice": "Kitchen"}`), 0644))
	t.Setenv("ECHOCTL_CONFIG", override)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", cfg.DefaultDevice)
}
