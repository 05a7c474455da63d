package db_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevennote/internal/notes/config"
	"elevennote/internal/notes/db"
)

func TestMigrationsURL(t *testing.T) {
	t.Run("absolute path is kept", func(t *testing.T) {
		dir := t.TempDir()

		url, err := db.MigrationsURL(dir)

		require.NoError(t, err)
		assert.Equal(t, "file://"+dir, url)
	})

	t.Run("relative path is resolved", func(t *testing.T) {
		url, err := db.MigrationsURL("migrations/notes")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "file:///"))
		assert.True(t, strings.HasSuffix(url, filepath.Join("migrations", "notes")))
	})
}

func TestNew_MigrationFailure(t *testing.T) {
	cfg := &config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     1,
		User:     "u",
		Password: "p",
		Database: "d",
		MinConn:  1,
		MaxConn:  2,
	}

	database, err := db.New(context.Background(), cfg, filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.Nil(t, database)
	assert.Contains(t, err.Error(), db.ErrDBMigrations)
}
