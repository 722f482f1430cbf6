package persistence

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEmbeddedMigrationsPresent(t *testing.T) {
	t.Parallel()

	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "0001_init.sql", entries[0].Name())

	content, err := migrationsFS.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "tickets"))
}

func TestRunMigrationsSkipsWithoutPool(t *testing.T) {
	t.Parallel()

	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}
