package scenedit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	assert.Equal(t, 500*time.Millisecond, DefaultConfig().Focus.Duration())
}

func TestParseConfig_OverlaysDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[fly]
base_speed = 12.5

[gizmo]
hitbox_scale = 5
`))
	require.NoError(t, err)
	assert.Equal(t, float32(12.5), cfg.Fly.BaseSpeed)
	assert.Equal(t, float32(5), cfg.Gizmo.HitboxScale)
	assert.Equal(t, DefaultConfig().Orbit, cfg.Orbit)
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := ParseConfig([]byte("[fly\nbase_speed = 1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")

	_, err = ParseConfig([]byte("[fly]\nmin_speed = 10\nmax_speed = 1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseConfig([]byte("[gizmo]\nhitbox_scale = 0.5\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_EncodeRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Focus.Padding = 3
	data, err := cfg.Encode()
	require.NoError(t, err)

	back, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigModule_FallsBackToDefaults(t *testing.T) {
	app := NewAppBuilder().UseModule(ConfigModule{Path: filepath.Join(t.TempDir(), "missing.toml")}).Build()
	assert.Equal(t, DefaultConfig(), MustResource[Config](app))
}

func TestConfigWatcher_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.toml")
	require.NoError(t, os.WriteFile(path, []byte("[fly]\nbase_speed = 2\n"), 0o644))

	app := NewAppBuilder().UseModule(ConfigModule{Path: path, Watch: true}).Build()
	cfg := MustResource[Config](app)
	w := MustResource[ConfigWatcher](app)
	defer w.Close()
	assert.Equal(t, float32(2), cfg.Fly.BaseSpeed)

	require.NoError(t, os.WriteFile(path, []byte("[fly]\nbase_speed = 9\n"), 0o644))
	assert.Eventually(t, func() bool {
		app.Step()
		return cfg.Fly.BaseSpeed == 9
	}, 5*time.Second, 20*time.Millisecond)
}

func TestConfigWatcher_SkipsInvalidFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.toml")
	require.NoError(t, os.WriteFile(path, []byte("[fly]\nbase_speed = 2\n"), 0o644))
	w, err := WatchConfig(path, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[fly]\nmin_speed = -1\n"), 0o644))
	select {
	case cfg := <-w.Updates():
		t.Fatalf("unexpected reload %+v", cfg.Fly)
	case <-time.After(300 * time.Millisecond):
	}
}
