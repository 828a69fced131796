package repositories

import (
	"encoding/json"
	"fmt"

	"watchlog/internal/models"
	"watchlog/internal/store"
)

// MapMovieRepository stores movie records as JSON in a durable map keyed by
// the movie id.
type MapMovieRepository struct {
	movies store.Map
}

// NewMapMovieRepository creates a new instance of MapMovieRepository.
func NewMapMovieRepository(movies store.Map) *MapMovieRepository {
	return &MapMovieRepository{
		movies: movies,
	}
}

// Create inserts a new movie record under its id.
func (r *MapMovieRepository) Create(movie *models.Movie) error {
	value, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("failed to encode movie %s: %w", movie.ID, err)
	}
	if _, _, err := r.movies.Insert(movie.ID, value); err != nil {
		return fmt.Errorf("failed to create movie %s: %w", movie.ID, err)
	}
	return nil
}

// GetAll returns every movie record, in the map's stable order.
func (r *MapMovieRepository) GetAll() ([]models.Movie, error) {
	values, err := r.movies.Values()
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	movies := make([]models.Movie, 0, len(values))
	for _, value := range values {
		var movie models.Movie
		if err := json.Unmarshal(value, &movie); err != nil {
			return nil, fmt.Errorf("failed to decode movie record: %w", err)
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

// GetByID returns the movie stored under id.
func (r *MapMovieRepository) GetByID(id string) (*models.Movie, error) {
	value, ok, err := r.movies.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("movie with ID %s: %w", id, ErrNoRecord)
	}
	var movie models.Movie
	if err := json.Unmarshal(value, &movie); err != nil {
		return nil, fmt.Errorf("failed to decode movie %s: %w", id, err)
	}
	return &movie, nil
}

// Update re-inserts an existing movie record under the same key.
func (r *MapMovieRepository) Update(movie *models.Movie) error {
	_, ok, err := r.movies.Get(movie.ID)
	if err != nil {
		return fmt.Errorf("failed to get movie %s: %w", movie.ID, err)
	}
	if !ok {
		return fmt.Errorf("movie with ID %s: %w", movie.ID, ErrNoRecord)
	}
	value, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("failed to encode movie %s: %w", movie.ID, err)
	}
	if _, _, err := r.movies.Insert(movie.ID, value); err != nil {
		return fmt.Errorf("failed to update movie %s: %w", movie.ID, err)
	}
	return nil
}

// Delete removes the movie stored under id and returns the removed record.
func (r *MapMovieRepository) Delete(id string) (*models.Movie, error) {
	removed, ok, err := r.movies.Remove(id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete movie %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("movie with ID %s: %w", id, ErrNoRecord)
	}
	var movie models.Movie
	if err := json.Unmarshal(removed, &movie); err != nil {
		return nil, fmt.Errorf("failed to decode movie %s: %w", id, err)
	}
	return &movie, nil
}
