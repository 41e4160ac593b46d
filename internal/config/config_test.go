package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := defaultConfig()

	assert.Equal(t, "https://api.github.com/", config.GitHub.APIURL)
	assert.Equal(t, time.Minute, config.Interval())
	assert.Equal(t, 30*time.Second, config.Timeout())
	assert.True(t, config.Watch.SingleFlight, "single flight should default to on")
	assert.Equal(t, SurfaceDesktop, config.Notifications.Surface)
	assert.Equal(t, "New pull request", config.Notifications.Title)
	assert.Equal(t, BadgeTerminal, config.Badge.Kind)
	assert.Equal(t, BackendJSON, config.Storage.Backend)
	assert.Equal(t, 20, config.Logging.MaxFiles)
	assert.True(t, config.Validate().IsValid())
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, config.Path())

	_, err = os.Stat(path)
	require.NoError(t, err, "default config should be written")

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Watch, again.Watch)
}

func TestLoad_MergesWithDefaults(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		assert func(t *testing.T, c *Config)
	}{
		{
			name: "missing sections keep defaults",
			json: `{"watch":{"interval_seconds":120}}`,
			assert: func(t *testing.T, c *Config) {
				assert.Equal(t, 2*time.Minute, c.Interval())
				assert.True(t, c.Watch.SingleFlight)
				assert.Equal(t, SurfaceDesktop, c.Notifications.Surface)
			},
		},
		{
			name: "explicit false is preserved",
			json: `{"watch":{"single_flight":false}}`,
			assert: func(t *testing.T, c *Config) {
				assert.False(t, c.Watch.SingleFlight)
				assert.Equal(t, 60, c.Watch.IntervalSeconds)
			},
		},
		{
			name: "unusable values are replaced",
			json: `{"github":{"api_url":"","timeout_seconds":-1},"watch":{"interval_seconds":0},"notifications":{"title":""}}`,
			assert: func(t *testing.T, c *Config) {
				assert.Equal(t, "https://api.github.com/", c.GitHub.APIURL)
				assert.Equal(t, 30, c.GitHub.TimeoutSeconds)
				assert.Equal(t, 60, c.Watch.IntervalSeconds)
				assert.Equal(t, "New pull request", c.Notifications.Title)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.json), 0o644))

			config, err := Load(path)
			require.NoError(t, err)
			tt.assert(t, config)
		})
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.json")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.json", path)
}

func TestSetAndGet(t *testing.T) {
	config := defaultConfig()

	require.NoError(t, config.Set("watch.interval_seconds", "90"))
	require.NoError(t, config.Set("watch.single_flight", "false"))
	require.NoError(t, config.Set("notifications.surface", "console"))
	require.NoError(t, config.Set("storage.backend", "sqlite"))
	require.NoError(t, config.Set("logging.max_files", "0"))

	for key, want := range map[string]string{
		"watch.interval_seconds": "90",
		"watch.single_flight":    "false",
		"notifications.surface":  "console",
		"storage.backend":        "sqlite",
		"logging.max_files":      "0",
	} {
		got, err := config.Get(key)
		require.NoError(t, err)
		assert.Equal(t, want, got, key)
	}
}

func TestSet_Rejects(t *testing.T) {
	config := defaultConfig()

	assert.Error(t, config.Set("watch.interval_seconds", "0"))
	assert.Error(t, config.Set("watch.single_flight", "maybe"))
	assert.Error(t, config.Set("badge.kind", "neon"))
	assert.Error(t, config.Set("logging.max_files", "-2"))
	assert.Error(t, config.Set("no.such.key", "x"))
	_, err := config.Get("no.such.key")
	assert.Error(t, err)

	assert.Equal(t, defaultConfig().Watch, config.Watch, "rejected values leave config unchanged")
}

func TestEveryKeyRoundTrips(t *testing.T) {
	config := defaultConfig()
	for _, key := range Keys() {
		value, err := config.Get(key)
		require.NoError(t, err, key)
		if value == "" {
			continue
		}
		assert.NoError(t, config.Set(key, value), key)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	config, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, config.Set("badge.kind", "file"))
	require.NoError(t, config.Set("badge.file", "/tmp/reviews.json"))
	require.NoError(t, config.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BadgeFile, reloaded.Badge.Kind)
	assert.Equal(t, "/tmp/reviews.json", reloaded.Badge.File)
}

func TestValidate(t *testing.T) {
	config := defaultConfig()
	config.Badge.Kind = BadgeFile
	config.GitHub.APIURL = "not a url"
	config.Watch.IntervalSeconds = 5
	config.Watch.SingleFlight = false

	report := config.Validate()
	assert.False(t, report.IsValid())
	assert.Len(t, report.Errors, 2)
	assert.Len(t, report.Warnings, 2)
}

func TestValidate_BothKinds(t *testing.T) {
	config := defaultConfig()
	config.Notifications.Surface = SurfaceBoth
	config.Badge.Kind = BadgeBoth
	report := config.Validate()
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], `badge.kind is "both"`)

	config.Badge.File = "/tmp/reviews.txt"
	assert.True(t, config.Validate().IsValid())

	require.NoError(t, config.Set("badge.kind", "both"))
	require.NoError(t, config.Set("notifications.surface", "both"))
}

func TestValidateFromFile(t *testing.T) {
	report, err := Validate(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.True(t, report.IsValid())
}
