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
)

// MovieService handles business logic for logged movies. Logging requires a
// registered profile; update and delete are gated on the creating identity.
type MovieService struct {
	movieRepo repositories.MovieRepository
	userRepo  repositories.UserRepository
	publisher events.Publisher
	now       func() uint64
	newID     func() string
}

// NewMovieService creates a new MovieService. publisher may be nil, in which
// case lifecycle events are skipped.
func NewMovieService(movieRepo repositories.MovieRepository, userRepo repositories.UserRepository, publisher events.Publisher) *MovieService {
	return &MovieService{
		movieRepo: movieRepo,
		userRepo:  userRepo,
		publisher: publisher,
		now:       nanotime,
		newID:     func() string { return uuid.New().String() },
	}
}

// SetClock overrides the timestamp source, for deterministic tests.
func (s *MovieService) SetClock(now func() uint64) { s.now = now }

// SetIDGenerator overrides the id source, for deterministic tests.
func (s *MovieService) SetIDGenerator(newID func() string) { s.newID = newID }

// LogMovie records a movie under the caller's profile. The owning user id is
// derived from the caller's registration, never taken from the payload.
func (s *MovieService) LogMovie(callerIdentity string, payload models.MoviePayload) (*models.Movie, error) {
	owner, err := s.userRepo.GetByOwnerIdentity(callerIdentity)
	if err != nil {
		if errors.Is(err, repositories.ErrNoRecord) {
			return nil, fmt.Errorf("%w: identity %s must register a user before logging movies", ErrNotRegistered, callerIdentity)
		}
		return nil, fmt.Errorf("failed to resolve profile for identity %s: %w", callerIdentity, err)
	}

	movie := &models.Movie{
		ID:            s.newID(),
		OwnerUserID:   owner.ID,
		OwnerIdentity: callerIdentity,
		CreatedAt:     s.now(),
		UpdatedAt:     nil,
	}
	payload.ApplyTo(movie)

	if err := s.movieRepo.Create(movie); err != nil {
		return nil, fmt.Errorf("failed to log movie: %w", err)
	}

	s.publish("movie.logged", map[string]interface{}{
		"movieID": movie.ID,
		"userID":  movie.OwnerUserID,
		"title":   movie.Title,
		"status":  movie.Status,
	})

	return movie, nil
}

// GetAllMovies retrieves all logged movies. An empty list is a valid result.
func (s *MovieService) GetAllMovies() ([]models.Movie, error) {
	return s.movieRepo.GetAll()
}

// GetMovieByID retrieves a single movie by its id.
func (s *MovieService) GetMovieByID(id string) (*models.Movie, error) {
	movie, err := s.movieRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNoRecord) {
			return nil, fmt.Errorf("%w: a movie with the ID %s was not found, check the ID and try again", ErrNotFound, id)
		}
		return nil, err
	}
	return movie, nil
}

// UpdateMovie merges the payload onto the movie with the given id. The
// ownership check runs before any mutation; id, owner fields and creation
// time are never changed.
func (s *MovieService) UpdateMovie(callerIdentity, id string, payload models.MoviePayload) (*models.Movie, error) {
	movie, err := s.GetMovieByID(id)
	if err != nil {
		return nil, err
	}
	if movie.OwnerIdentity != callerIdentity {
		return nil, fmt.Errorf("%w: movie %s belongs to another identity", ErrUnauthorized, id)
	}

	payload.ApplyTo(movie)
	stamped := s.now()
	movie.UpdatedAt = &stamped

	if err := s.movieRepo.Update(movie); err != nil {
		return nil, fmt.Errorf("failed to update movie %s: %w", id, err)
	}
	return movie, nil
}

// DeleteMovie removes the movie with the given id and returns the removed
// record.
func (s *MovieService) DeleteMovie(callerIdentity, id string) (*models.Movie, error) {
	movie, err := s.GetMovieByID(id)
	if err != nil {
		return nil, err
	}
	if movie.OwnerIdentity != callerIdentity {
		return nil, fmt.Errorf("%w: movie %s belongs to another identity", ErrUnauthorized, id)
	}

	removed, err := s.movieRepo.Delete(id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete movie %s: %w", id, err)
	}

	s.publish("movie.removed", map[string]interface{}{
		"movieID": removed.ID,
		"userID":  removed.OwnerUserID,
	})

	return removed, nil
}

func (s *MovieService) publish(routingKey string, event map[string]interface{}) {
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
