package adapter

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
	assert.Equal(t, 30, cfg.Browse.PageSize)
	assert.Equal(t, 400*time.Millisecond, cfg.Browse.URLDebounce)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfigFrom_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
backend:
  url: http://api.internal:9000
browse:
  page_size: 12
  url_debounce: 1s
server:
  allowed_origins: [https://paintx.art]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("PAINTX_SERVER_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PAINTX_BROWSE_NARROW_WIDTH", "80")

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://api.internal:9000", cfg.Backend.URL)
	assert.Equal(t, 12, cfg.Browse.PageSize)
	assert.Equal(t, time.Second, cfg.Browse.URLDebounce)
	assert.Equal(t, []string{"https://paintx.art"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Server.RedisURL)
	assert.Equal(t, 80, cfg.Browse.NarrowWidth)
}

func TestSaveConfigTo_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Backend.URL = "http://saved:1"
	cfg.Browse.LookaheadRows = 9

	require.NoError(t, SaveConfigTo(dir, cfg))

	loaded, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://saved:1", loaded.Backend.URL)
	assert.Equal(t, 9, loaded.Browse.LookaheadRows)
	assert.Equal(t, cfg.Backend.Timeout, loaded.Backend.Timeout)
}

func TestSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "paintx.log")
	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("hello", "k", "v")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("nonsense"))
}

func TestLauncher(t *testing.T) {
	type call struct {
		name string
		args []string
	}

	newLauncher := func(command string, available map[string]bool) (*Launcher, *[]call) {
		var calls []call
		l := NewLauncher(command, []string{"--fullscreen"}, NullLogger())
		l.lookPath = func(name string) (string, error) {
			if available[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		}
		l.start = func(name string, args ...string) error {
			calls = append(calls, call{name, args})
			return nil
		}
		return l, &calls
	}

	t.Run("configured viewer wins", func(t *testing.T) {
		l, calls := newLauncher("myviewer", nil)
		require.NoError(t, l.OpenImage("https://img/x.jpg"))
		require.Len(t, *calls, 1)
		assert.Equal(t, "myviewer", (*calls)[0].name)
		assert.Equal(t, []string{"--fullscreen", "https://img/x.jpg"}, (*calls)[0].args)
	})

	t.Run("empty url is rejected", func(t *testing.T) {
		l, calls := newLauncher("", nil)
		assert.Error(t, l.OpenImage(""))
		assert.Empty(t, *calls)
	})

	t.Run("falls back to system default", func(t *testing.T) {
		l, calls := newLauncher("", nil)
		require.NoError(t, l.OpenImage("https://img/x.jpg"))
		require.NotEmpty(t, *calls)
		last := (*calls)[len(*calls)-1]
		assert.Equal(t, "https://img/x.jpg", last.args[len(last.args)-1])
	})
}

func TestPaintingPageURL(t *testing.T) {
	assert.Equal(t, "https://paintx.art/art/sea-at-dawn", PaintingPageURL("https://paintx.art/", "sea-at-dawn"))
}

func TestClearSession_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, "paintx-data")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paintx.db"), []byte("x"), 0o600))

	cfg := DefaultConfig()
	cfg.Store.Path = "~/paintx-data"
	require.NoError(t, ClearSession(cfg))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "store directory removed")

	require.NoError(t, ClearSession(cfg), "clearing twice is fine")
}
