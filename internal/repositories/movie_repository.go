package repositories

import "watchlog/internal/models"

// MovieRepository defines the interface for movie record access.
type MovieRepository interface {
	Create(movie *models.Movie) error
	GetAll() ([]models.Movie, error)
	GetByID(id string) (*models.Movie, error)
	Update(movie *models.Movie) error
	Delete(id string) (*models.Movie, error)
}
