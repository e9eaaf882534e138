package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "wxr", cfg.Import.Provider)
	assert.Equal(t, "assets", cfg.Import.AssetsDir)
	assert.Equal(t, 4, cfg.Import.Workers)
	assert.True(t, cfg.Import.ReplaceURLsEnabled())
	assert.False(t, cfg.Import.FetchResources)
	assert.Equal(t, "Mozilla/5.0 siteimport", cfg.Fetch.UserAgent)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, "siteimport.events", cfg.Journal.SubjectPrefix)
	require.NoError(t, Validate(cfg))
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
version: "1"
logging:
  level: DEBUG
  format: json
import:
  source: blog.xml
  dest: ./site
  replace_urls: false
  fetch_resources: true
  assets_dir: media
  post_layout: post
  workers: 1
fetch:
  timeout: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "blog.xml", cfg.Import.Source)
	assert.False(t, cfg.Import.ReplaceURLsEnabled())
	assert.True(t, cfg.Import.FetchResources)
	assert.Equal(t, "media", cfg.Import.AssetsDir)
	assert.Equal(t, "post", cfg.Import.PostLayout)
	assert.Equal(t, 1, cfg.Import.Workers)
	assert.Equal(t, "5s", cfg.Fetch.Timeout)
	assert.Equal(t, 5e9, float64(cfg.FetchTimeout()))
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SITEIMPORT_TEST_NATS", "nats://broker:4222")
	path := writeConfig(t, `
journal:
  path: journal.db
  nats_url: ${SITEIMPORT_TEST_NATS}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "nats://broker:4222", cfg.Journal.NATSURL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "import: [unclosed"},
		{"bad version", `version: "9"`},
		{"negative workers", "import:\n  workers: -2"},
		{"escaping assets", "import:\n  assets_dir: ../outside"},
		{"bad timeout", "fetch:\n  timeout: soon"},
		{"nats without journal", "journal:\n  nats_url: nats://x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "export.xml", cfg.Import.Source)
	assert.Equal(t, ".siteimport/journal.db", cfg.Journal.Path)

	err = Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	require.NoError(t, Init(path, true))
}

func TestValidateAssetsDir(t *testing.T) {
	for _, ok := range []string{"assets", "/assets/", "media/images"} {
		assert.NoError(t, ValidateAssetsDir(ok), ok)
	}
	for _, bad := range []string{"", "/", "..", "a/../../b"} {
		assert.Error(t, ValidateAssetsDir(bad), bad)
	}
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("loud"))
	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "DEBUG", LogLevelDebug.SlogLevel().String())
}
