package store

import (
	"errors"
	"fmt"
)

// Bound violation errors returned by Insert. A failed Insert leaves the map
// unchanged.
var (
	ErrKeyTooLarge   = errors.New("key exceeds the configured maximum size")
	ErrValueTooLarge = errors.New("value exceeds the configured maximum size")
	ErrMapFull       = errors.New("map holds the configured maximum number of entries")
)

// Map is the durable string-keyed collection the record store is built on.
// Keys and values are size-bounded and every operation is atomic: callers
// never observe a partially applied mutation.
type Map interface {
	// Insert stores value under key and returns the previous value if the
	// key was already present.
	Insert(key string, value []byte) (prev []byte, replaced bool, err error)
	// Get returns the value stored under key, if any.
	Get(key string) (value []byte, ok bool, err error)
	// Remove deletes key and returns the removed value, if any.
	Remove(key string) (removed []byte, ok bool, err error)
	// Values returns every stored value. The order is unspecified but
	// stable within a single process run.
	Values() ([][]byte, error)
	// Len returns the number of entries.
	Len() (int, error)
}

// Config bounds a single map. Zero fields fall back to the defaults below.
type Config struct {
	MaxKeyBytes   int
	MaxValueBytes int
	MaxEntries    int
}

// Defaults matching the original deployment: short opaque keys, kilobyte-scale
// records, caller-bounded entry counts.
const (
	DefaultMaxKeyBytes   = 44
	DefaultMaxValueBytes = 10_000
	DefaultMaxEntries    = 10_000
)

func (c Config) withDefaults() Config {
	if c.MaxKeyBytes <= 0 {
		c.MaxKeyBytes = DefaultMaxKeyBytes
	}
	if c.MaxValueBytes <= 0 {
		c.MaxValueBytes = DefaultMaxValueBytes
	}
	if c.MaxEntries <= 0 {
		c.MaxEntries = DefaultMaxEntries
	}
	return c
}

// check validates key/value sizes against the bounds. size is the current
// entry count, used only when the key is new.
func (c Config) check(key string, value []byte, size int, exists bool) error {
	if len(key) > c.MaxKeyBytes {
		return fmt.Errorf("%w: key is %d bytes, limit is %d", ErrKeyTooLarge, len(key), c.MaxKeyBytes)
	}
	if len(value) > c.MaxValueBytes {
		return fmt.Errorf("%w: value is %d bytes, limit is %d", ErrValueTooLarge, len(value), c.MaxValueBytes)
	}
	if !exists && size >= c.MaxEntries {
		return fmt.Errorf("%w: limit is %d entries", ErrMapFull, c.MaxEntries)
	}
	return nil
}
