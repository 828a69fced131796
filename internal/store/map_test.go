package store_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"watchlog/internal/store"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openMaps builds one map per implementation so every contract test runs
// against both the in-memory and the GORM-backed variant.
func openMaps(t *testing.T, cfg store.Config) map[string]store.Map {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{})
	assert.NoError(t, err)
	gormMap, err := store.NewGormMap(db, "contract", cfg)
	assert.NoError(t, err)

	return map[string]store.Map{
		"memory": store.NewMemoryMap(cfg),
		"gorm":   gormMap,
	}
}

func TestMapInsertGetRemove(t *testing.T) {
	for name, m := range openMaps(t, store.Config{}) {
		t.Run(name, func(t *testing.T) {
			// Fresh key: no previous value
			prev, replaced, err := m.Insert("k1", []byte("v1"))
			assert.NoError(t, err)
			assert.False(t, replaced)
			assert.Nil(t, prev)

			// Replacing returns the previous value
			prev, replaced, err = m.Insert("k1", []byte("v2"))
			assert.NoError(t, err)
			assert.True(t, replaced)
			assert.Equal(t, []byte("v1"), prev)

			value, ok, err := m.Get("k1")
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte("v2"), value)

			_, ok, err = m.Get("missing")
			assert.NoError(t, err)
			assert.False(t, ok)

			removed, ok, err := m.Remove("k1")
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte("v2"), removed)

			// Second removal is a miss, not an error
			_, ok, err = m.Remove("k1")
			assert.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestMapValuesAndLen(t *testing.T) {
	for name, m := range openMaps(t, store.Config{}) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				_, _, err := m.Insert(fmt.Sprintf("k%d", i), []byte(fmt.Sprintf("v%d", i)))
				assert.NoError(t, err)
			}

			size, err := m.Len()
			assert.NoError(t, err)
			assert.Equal(t, 5, size)

			first, err := m.Values()
			assert.NoError(t, err)
			assert.Len(t, first, 5)

			// Order is stable within a run
			second, err := m.Values()
			assert.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestMapBounds(t *testing.T) {
	cfg := store.Config{MaxKeyBytes: 8, MaxValueBytes: 16, MaxEntries: 2}
	for name, m := range openMaps(t, cfg) {
		t.Run(name, func(t *testing.T) {
			_, _, err := m.Insert(strings.Repeat("k", 9), []byte("v"))
			assert.ErrorIs(t, err, store.ErrKeyTooLarge)

			_, _, err = m.Insert("k", []byte(strings.Repeat("v", 17)))
			assert.ErrorIs(t, err, store.ErrValueTooLarge)

			_, _, err = m.Insert("k1", []byte("v1"))
			assert.NoError(t, err)
			_, _, err = m.Insert("k2", []byte("v2"))
			assert.NoError(t, err)
			_, _, err = m.Insert("k3", []byte("v3"))
			assert.ErrorIs(t, err, store.ErrMapFull)

			// Replacing an existing key is allowed at capacity
			_, replaced, err := m.Insert("k2", []byte("v2b"))
			assert.NoError(t, err)
			assert.True(t, replaced)

			// Failed inserts left no trace
			size, err := m.Len()
			assert.NoError(t, err)
			assert.Equal(t, 2, size)
			_, ok, err := m.Get("k3")
			assert.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestGormMapPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	assert.NoError(t, err)
	m, err := store.NewGormMap(db, "users", store.Config{})
	assert.NoError(t, err)
	_, _, err = m.Insert("u-1", []byte(`{"id":"u-1"}`))
	assert.NoError(t, err)

	// Reopen the database the way a restarted process would
	db2, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	assert.NoError(t, err)
	reopened, err := store.NewGormMap(db2, "users", store.Config{})
	assert.NoError(t, err)

	value, ok, err := reopened.Get("u-1")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"id":"u-1"}`), value)
}

func TestGormMapCollectionsAreIsolated(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{})
	assert.NoError(t, err)

	users, err := store.NewGormMap(db, "users", store.Config{})
	assert.NoError(t, err)
	movies, err := store.NewGormMap(db, "movies", store.Config{})
	assert.NoError(t, err)

	_, _, err = users.Insert("id", []byte("user"))
	assert.NoError(t, err)
	_, _, err = movies.Insert("id", []byte("movie"))
	assert.NoError(t, err)

	value, ok, err := users.Get("id")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("user"), value)

	size, err := movies.Len()
	assert.NoError(t, err)
	assert.Equal(t, 1, size)
}
