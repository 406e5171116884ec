package store

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.MustExec(`CREATE TABLE documents (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    )`)
	return New(db)
}

func TestLoadMissingKey(t *testing.T) {
	st := newTestStore(t)

	var out []string
	err := st.Load("breads", &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := newTestStore(t)

	in := []string{"Baguette", "Lavash"}
	require.NoError(t, st.Save("breads", in))

	var out []string
	require.NoError(t, st.Load("breads", &out))
	assert.Equal(t, in, out)
}

func TestSaveOverwrites(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Save("sales", []int{1, 2, 3}))
	require.NoError(t, st.Save("sales", []int{9}))

	var out []int
	require.NoError(t, st.Load("sales", &out))
	assert.Equal(t, []int{9}, out)
}

func TestLoadMalformedDocument(t *testing.T) {
	st := newTestStore(t)
	st.db.MustExec(`INSERT INTO documents (key, value) VALUES ('breads', 'not json at all')`)

	var out []string
	err := st.Load("breads", &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
