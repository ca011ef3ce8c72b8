package migrate_test

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every migration must ship with a down file and non-empty SQL.
func TestMigrationFilesArePaired(t *testing.T) {
	src, err := (&file.File{}).Open("file://../../migrations")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)

	tables := map[string]bool{}
	count := 0
	for {
		count++

		up, _, err := src.ReadUp(version)
		require.NoError(t, err, "up migration %d", version)
		body := readAll(t, up)
		assert.NotEmpty(t, strings.TrimSpace(body), "up migration %d", version)
		for _, table := range []string{"companies", "departments", "workers", "additional_spendings", "revenues", "payroll_transactions", "outbox_events"} {
			if strings.Contains(body, "CREATE TABLE IF NOT EXISTS "+table+" ") {
				tables[table] = true
			}
		}

		down, _, err := src.ReadDown(version)
		require.NoError(t, err, "down migration %d", version)
		assert.Contains(t, readAll(t, down), "DROP TABLE")

		next, err := src.Next(version)
		if errors.Is(err, os.ErrNotExist) {
			break
		}
		require.NoError(t, err)
		version = next
	}

	assert.Equal(t, 7, count)
	assert.Len(t, tables, 7)
}

func readAll(t *testing.T, r io.ReadCloser) string {
	t.Helper()
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}
