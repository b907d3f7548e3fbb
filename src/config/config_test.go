package config

import (
	"path/filepath"
	"testing"

	"stock-watch/src/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
port: 5000
storage:
  db_path: watch.db
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "stock-watch", cfg.Name)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "sqlite", cfg.Storage.DBType)
	assert.Equal(t, DefaultStorageKey, cfg.Storage.Key)
	assert.Equal(t, 15, cfg.Poller.PollIntervalSeconds)
	assert.Equal(t, 1000, cfg.Poller.FlashDurationMs)
	assert.Equal(t, DefaultBaseURL, cfg.DataSource.BaseURL)
}

func TestParseKeepsOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
port: 5000
log_level: DEBUG
storage:
  db_type: redis
  redis_addr: localhost:6379
poller:
  poll_interval_seconds: 5
  flash_duration_ms: 250
`))
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Storage.DBType)
	assert.Equal(t, 5, cfg.Poller.PollIntervalSeconds)
	assert.Equal(t, 250, cfg.Poller.FlashDurationMs)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"low port":        "port: 80\nstorage:\n  db_path: x.db\n",
		"no sqlite path":  "port: 5000\n",
		"no postgres dsn": "port: 5000\nstorage:\n  db_type: postgres\n",
		"no redis addr":   "port: 5000\nstorage:\n  db_type: redis\n",
		"unknown db":      "port: 5000\nstorage:\n  db_type: bolt\n",
		"negative poll":   "port: 5000\nstorage:\n  db_path: x.db\npoller:\n  poll_interval_seconds: -1\n",
		"unknown source":  "port: 5000\nstorage:\n  db_path: x.db\ndata_source:\n  name: finnhub\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, helpers.IsConfigurationError(err))
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Port, loaded.Port)
	assert.Equal(t, cfg.Storage, loaded.Storage)
	assert.Equal(t, cfg.Poller, loaded.Poller)
	assert.Equal(t, cfg.DataSource, loaded.DataSource)
}
