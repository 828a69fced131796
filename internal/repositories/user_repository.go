package repositories

import (
	"errors"

	"watchlog/internal/models"
)

// ErrNoRecord is returned by repositories when a lookup targets an id that is
// absent from the collection. Services classify it into caller-facing errors.
var ErrNoRecord = errors.New("record not found")

// UserRepository defines the interface for user record access.
type UserRepository interface {
	Create(user *models.User) error
	GetAll() ([]models.User, error)
	GetByID(id string) (*models.User, error)
	// GetByOwnerIdentity returns the user created by the given caller
	// identity, or ErrNoRecord if that identity has no profile.
	GetByOwnerIdentity(identity string) (*models.User, error)
	Update(user *models.User) error
	Delete(id string) (*models.User, error)
}
