package store

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// mapEntry is the row backing a single key/value pair. Collection namespaces
// several maps inside one table so the user and movie maps share a database.
type mapEntry struct {
	Collection string `gorm:"primaryKey;type:varchar(64)"`
	Key        string `gorm:"primaryKey;type:varchar(64)"`
	Value      []byte
}

// TableName keeps the table name stable regardless of GORM's pluralization.
func (mapEntry) TableName() string { return "map_entries" }

// GormMap is a GORM-backed implementation of Map. Entries survive process
// restarts; the database driver (sqlite or postgres) is chosen by the caller
// when opening the *gorm.DB.
type GormMap struct {
	db         *gorm.DB
	collection string
	cfg        Config
	mu         sync.Mutex
}

// NewGormMap creates a durable map stored under the given collection name,
// migrating the backing table if needed.
func NewGormMap(db *gorm.DB, collection string, cfg Config) (*GormMap, error) {
	if err := db.AutoMigrate(&mapEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate map_entries: %w", err)
	}
	return &GormMap{
		db:         db,
		collection: collection,
		cfg:        cfg.withDefaults(),
	}, nil
}

// Insert stores value under key and returns the previous value if any.
func (m *GormMap) Insert(key string, value []byte) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, exists, err := m.get(key)
	if err != nil {
		return nil, false, err
	}

	size, err := m.len()
	if err != nil {
		return nil, false, err
	}
	if err := m.cfg.check(key, value, size, exists); err != nil {
		return nil, false, err
	}

	entry := mapEntry{Collection: m.collection, Key: key, Value: value}
	if exists {
		err = m.db.Model(&mapEntry{}).
			Where("collection = ? AND key = ?", m.collection, key).
			Update("value", value).Error
	} else {
		err = m.db.Create(&entry).Error
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert entry %s: %w", key, err)
	}
	return prev, exists, nil
}

// Get returns the value stored under key, if any.
func (m *GormMap) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(key)
}

// Remove deletes key and returns the removed value, if any.
func (m *GormMap) Remove(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed, exists, err := m.get(key)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}
	res := m.db.Where("collection = ? AND key = ?", m.collection, key).Delete(&mapEntry{})
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to remove entry %s: %w", key, res.Error)
	}
	return removed, true, nil
}

// Values returns all stored values in key order, which is stable for the
// lifetime of the process.
func (m *GormMap) Values() ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []mapEntry
	err := m.db.Where("collection = ?", m.collection).Order("key").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	values := make([][]byte, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.Value)
	}
	return values, nil
}

// Len returns the number of entries.
func (m *GormMap) Len() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.len()
}

func (m *GormMap) get(key string) ([]byte, bool, error) {
	var entry mapEntry
	err := m.db.First(&entry, "collection = ? AND key = ?", m.collection, key).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get entry %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (m *GormMap) len() (int, error) {
	var count int64
	err := m.db.Model(&mapEntry{}).Where("collection = ?", m.collection).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return int(count), nil
}
