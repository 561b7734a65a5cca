package database

import (
	"testing"

	"github.com/mauv0809/mundialito/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"tournaments", "teams", "players", "player_tournament_stats", "team_tournament_stats", "player_awards"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_ForeignKeysEnabled(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec("INSERT INTO teams (id, tournament_id, name) VALUES (1, 42, 'Ghost FC')")
	assert.Error(t, err, "a team referencing a missing tournament should be rejected")
}

func TestInitDB_MissingMigrations(t *testing.T) {
	_, _, err := InitDB(":memory:", "", "", "./does-not-exist")
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, _, _, err := Open(config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestOpen_PostgresRequiresURL(t *testing.T) {
	_, dialect, _, err := Open(config.Config{DBDriver: "pgx"})
	assert.Error(t, err)
	assert.Equal(t, DialectPostgres, dialect)
}

func TestOpen_SQLite(t *testing.T) {
	db, dialect, teardown, err := Open(config.Config{DBName: ":memory:", MigrationsDir: "../../migrations"})
	require.NoError(t, err)
	defer teardown()
	assert.Equal(t, DialectSQLite, dialect)
	assert.NoError(t, db.Ping())
}
