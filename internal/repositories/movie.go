package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/shared"
	"gorm.io/gorm"
)

// CriterionYear filters [MovieRepository.List] by release year. The value must be an int.
const CriterionYear = "year"

// MovieRepository implements [models.MovieStore] for [models.Movie] persistence.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new [MovieRepository] with the given gorm session
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create inserts a new movie. The store assigns the id and writes it back into movie.
func (r *MovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	movie.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(movie).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}
	return nil
}

// Get retrieves a movie by id
func (r *MovieRepository) Get(ctx context.Context, id int) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		return nil, notFound(err, id)
	}
	return &movie, nil
}

// Update overwrites title, year and rating of the movie with movie.ID.
//
// On success movie holds the stored row.
func (r *MovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Movie
		if err := tx.First(&existing, movie.ID).Error; err != nil {
			return notFound(err, movie.ID)
		}

		existing.Title = movie.Title
		existing.Year = movie.Year
		existing.Rating = movie.Rating

		if err := tx.Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update movie: %w", err)
		}

		*movie = existing
		return nil
	})
}

// Delete removes a movie by id and returns the deleted row
func (r *MovieRepository) Delete(ctx context.Context, id int) (*models.Movie, error) {
	var deleted models.Movie

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, id).Error; err != nil {
			return notFound(err, id)
		}
		if err := tx.Delete(&deleted).Error; err != nil {
			return fmt.Errorf("failed to delete movie: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// List retrieves movies ordered by id. Supported criteria: [CriterionYear].
func (r *MovieRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Movie, error) {
	query := r.db.WithContext(ctx).Order("id")

	for key, value := range criteria {
		switch key {
		case CriterionYear:
			year, ok := value.(int)
			if !ok {
				return nil, fmt.Errorf("%w: %s criterion must be an int, got %T", shared.ErrInvalidArgument, key, value)
			}
			query = query.Where("year = ?", year)
		default:
			return nil, fmt.Errorf("%w: unknown criterion %q", shared.ErrInvalidArgument, key)
		}
	}

	movies := []*models.Movie{}
	if err := query.Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// Count returns the number of stored movies
func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return n, nil
}

func notFound(err error, id int) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %d", shared.ErrMovieNotFound, id)
	}
	return fmt.Errorf("failed to query movie: %w", err)
}

var _ models.MovieStore = (*MovieRepository)(nil)
