package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Config.yaml")
	data := []byte(`LogLevel: debug
InstallContext: machine
UserSID: s-1-1-0
Properties:
  - ProductName
  - Publisher
LenientEnumeration: true
OutputFormat: YAML
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "machine", cfg.InstallContext)
	assert.Equal(t, "s-1-1-0", cfg.UserSID)
	assert.Equal(t, []string{"ProductName", "Publisher"}, cfg.Properties)
	assert.True(t, cfg.LenientEnumeration)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	// Unset keys keep defaults.
	assert.Equal(t, 10, cfg.LogRetention)
	assert.NotEmpty(t, cfg.LogPath)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("policy registry may be populated")
	}
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"level.yaml":  "LogLevel: chatty\n",
		"format.yaml": "OutputFormat: xml\n",
		"retain.yaml": "LogRetention: -1\n",
		"syntax.yaml": "Properties: [unterminated\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err := LoadConfigFrom(path)
		assert.Error(t, err, name)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "Config.yaml")
	cfg := GetDefaultConfig()
	cfg.InstallContext = "userManaged|machine"
	cfg.OutputFormat = "json"

	require.NoError(t, SaveConfig(cfg, path))
	loaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
