package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults when file is missing", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("file overrides defaults and env overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "application.yaml")
		yaml := `
port: 9090
db:
  host: db.internal
  name: recipes
spoonacular:
  apikey: from-file
  timeout: 3s
cache:
  ttl: 5m
`
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
		t.Setenv("RECIPEBOOK_DB_HOST", "db.from.env")
		t.Setenv("RECIPEBOOK_SPOONACULAR_APIKEY", "from-env")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "db.from.env", cfg.Database.Host)
		assert.Equal(t, "recipes", cfg.Database.Name)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "from-env", cfg.Spoonacular.ApiKey)
		assert.Equal(t, 3*time.Second, cfg.Spoonacular.Timeout)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, 512, cfg.Cache.Size)
	})

	t.Run("fails on malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "application.yaml")
		require.NoError(t, os.WriteFile(path, []byte("db: [unclosed"), 0o600))

		_, err := Load(path)

		assert.Error(t, err)
	})
}
