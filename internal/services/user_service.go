package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"watchlog/internal/models"
	"watchlog/internal/repositories"
	"watchlog/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles business logic for user profiles: registration,
// lookup, merge-updates and ownership-gated deletion.
type UserService struct {
	userRepo  repositories.UserRepository
	publisher events.Publisher
	now       func() uint64
	newID     func() string
}

// NewUserService creates a new UserService. publisher may be nil, in which
// case lifecycle events are skipped.
func NewUserService(userRepo repositories.UserRepository, publisher events.Publisher) *UserService {
	return &UserService{
		userRepo:  userRepo,
		publisher: publisher,
		now:       nanotime,
		newID:     func() string { return uuid.New().String() },
	}
}

// SetClock overrides the timestamp source, for deterministic tests.
func (s *UserService) SetClock(now func() uint64) { s.now = now }

// SetIDGenerator overrides the id source, for deterministic tests.
func (s *UserService) SetIDGenerator(newID func() string) { s.newID = newID }

// Register creates a profile for the calling identity. Each identity may
// register exactly once; the password is optional and stored hashed.
func (s *UserService) Register(callerIdentity, username, password string) (*models.User, error) {
	if existing, err := s.userRepo.GetByOwnerIdentity(callerIdentity); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: identity %s already registered user %s", ErrAlreadyRegistered, callerIdentity, existing.ID)
	} else if err != nil && !errors.Is(err, repositories.ErrNoRecord) {
		return nil, fmt.Errorf("failed to check registration for identity %s: %w", callerIdentity, err)
	}

	hash := ""
	if password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hash = string(hashedPassword)
	}

	user := &models.User{
		ID:            s.newID(),
		OwnerIdentity: callerIdentity,
		Username:      username,
		PasswordHash:  hash,
		CreatedAt:     s.now(),
		UpdatedAt:     nil,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.publish("user.registered", map[string]interface{}{
		"userID":   user.ID,
		"username": user.Username,
	})

	return user, nil
}

// GetAllUsers retrieves all user profiles. An empty list is a valid result.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByID retrieves a single profile by its id.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNoRecord) {
			return nil, fmt.Errorf("%w: a user with the ID %s was not found, check the ID and try again", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser merges the payload onto the profile with the given id. Only the
// identity that created the profile may update it; id, owner identity and
// creation time are never changed.
func (s *UserService) UpdateUser(callerIdentity, id string, payload models.UserPayload) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user.OwnerIdentity != callerIdentity {
		return nil, fmt.Errorf("%w: user %s belongs to another identity", ErrUnauthorized, id)
	}

	hash := ""
	if payload.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hash = string(hashedPassword)
	}

	payload.ApplyTo(user, hash)
	stamped := s.now()
	user.UpdatedAt = &stamped

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return user, nil
}

// DeleteUser removes the profile with the given id and returns the removed
// record. Movies logged under the profile are left untouched.
func (s *UserService) DeleteUser(callerIdentity, id string) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user.OwnerIdentity != callerIdentity {
		return nil, fmt.Errorf("%w: user %s belongs to another identity", ErrUnauthorized, id)
	}

	removed, err := s.userRepo.Delete(id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user %s: %w", id, err)
	}

	s.publish("user.removed", map[string]interface{}{
		"userID": removed.ID,
	})

	return removed, nil
}

// publish sends a lifecycle event best-effort; failures are logged, never
// propagated to the caller.
func (s *UserService) publish(routingKey string, event map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
