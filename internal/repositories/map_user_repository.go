package repositories

import (
	"encoding/json"
	"fmt"

	"watchlog/internal/models"
	"watchlog/internal/store"
)

// MapUserRepository stores user records as JSON in a durable map keyed by
// the user id.
type MapUserRepository struct {
	users store.Map
}

// NewMapUserRepository creates a new instance of MapUserRepository.
func NewMapUserRepository(users store.Map) *MapUserRepository {
	return &MapUserRepository{
		users: users,
	}
}

// Create inserts a new user record under its id.
func (r *MapUserRepository) Create(user *models.User) error {
	value, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user %s: %w", user.ID, err)
	}
	if _, _, err := r.users.Insert(user.ID, value); err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.ID, err)
	}
	return nil
}

// GetAll returns every user record, in the map's stable order.
func (r *MapUserRepository) GetAll() ([]models.User, error) {
	values, err := r.users.Values()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]models.User, 0, len(values))
	for _, value := range values {
		var user models.User
		if err := json.Unmarshal(value, &user); err != nil {
			return nil, fmt.Errorf("failed to decode user record: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

// GetByID returns the user stored under id.
func (r *MapUserRepository) GetByID(id string) (*models.User, error) {
	value, ok, err := r.users.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNoRecord)
	}
	var user models.User
	if err := json.Unmarshal(value, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	return &user, nil
}

// GetByOwnerIdentity scans the collection for the profile created by the
// given caller identity. Linear in the collection size, which is bounded by
// the one-profile-per-identity rule.
func (r *MapUserRepository) GetByOwnerIdentity(identity string) (*models.User, error) {
	users, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].OwnerIdentity == identity {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user owned by identity %s: %w", identity, ErrNoRecord)
}

// Update re-inserts an existing user record under the same key.
func (r *MapUserRepository) Update(user *models.User) error {
	_, ok, err := r.users.Get(user.ID)
	if err != nil {
		return fmt.Errorf("failed to get user %s: %w", user.ID, err)
	}
	if !ok {
		return fmt.Errorf("user with ID %s: %w", user.ID, ErrNoRecord)
	}
	value, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user %s: %w", user.ID, err)
	}
	if _, _, err := r.users.Insert(user.ID, value); err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

// Delete removes the user stored under id and returns the removed record.
func (r *MapUserRepository) Delete(id string) (*models.User, error) {
	removed, ok, err := r.users.Remove(id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNoRecord)
	}
	var user models.User
	if err := json.Unmarshal(removed, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	return &user, nil
}
