// package tasks implements catalog-wide operations: seeding, import, export and remote push.
package tasks

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/repositories"
	"github.com/negagl/my-movie-api/internal/shared"
)

// MovieResult is the outcome for a single movie of an import or push.
type MovieResult struct {
	Movie models.Movie // Stored movie (with its new id) on success, the input otherwise
	Error error
}

// ImportResult summarizes an import.
type ImportResult struct {
	Total    int
	Imported int
	Failed   int
	Results  []MovieResult
}

// CatalogEngine runs catalog operations against a [models.MovieStore].
type CatalogEngine struct {
	store    models.MovieStore
	validate *validator.Validate
}

// NewCatalogEngine creates a new CatalogEngine over store.
func NewCatalogEngine(store models.MovieStore) *CatalogEngine {
	return &CatalogEngine{store: store, validate: models.NewValidator()}
}

// Seed stores movies when the catalog is empty and returns how many were added.
//
// A catalog with at least one movie is left untouched.
func (e *CatalogEngine) Seed(ctx context.Context, progress chan<- ProgressUpdate, movies []models.Movie) (int, error) {
	if e.store == nil {
		return 0, fmt.Errorf("%w: store not initialized", shared.ErrServiceUnavailable)
	}

	count, err := e.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	if count > 0 {
		sendProgress(progress, seedSkippedUpdate(count))
		return 0, nil
	}

	for i, m := range movies {
		movie := m
		if err := e.store.Create(ctx, &movie); err != nil {
			return i, fmt.Errorf("failed to seed %q: %w", m.Title, err)
		}
		sendProgress(progress, movieStoredUpdate(SeedCatalog, i+1, len(movies), &movie))
	}

	return len(movies), nil
}

// Import validates and stores movies one by one. Ids in the input are ignored.
//
// Invalid movies are skipped and reported in the result; a storage error or a canceled context aborts the import.
func (e *CatalogEngine) Import(ctx context.Context, progress chan<- ProgressUpdate, movies []models.Movie) (*ImportResult, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: store not initialized", shared.ErrServiceUnavailable)
	}

	result := &ImportResult{Total: len(movies), Results: make([]MovieResult, 0, len(movies))}

	for i, m := range movies {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := e.Check(models.NewMoviePayload(m.Title, m.Year, m.Rating)); err != nil {
			result.Failed++
			result.Results = append(result.Results, MovieResult{Movie: m, Error: err})
			sendProgress(progress, movieFailedUpdate(ImportMovies, i+1, len(movies), m.Title, err))
			continue
		}

		movie := models.Movie{Title: m.Title, Year: m.Year, Rating: m.Rating}
		if err := e.store.Create(ctx, &movie); err != nil {
			return result, fmt.Errorf("failed to import %q: %w", m.Title, err)
		}

		result.Imported++
		result.Results = append(result.Results, MovieResult{Movie: movie})
		sendProgress(progress, movieStoredUpdate(ImportMovies, i+1, len(movies), &movie))
	}

	return result, nil
}

// Export reads the catalog ordered by id. A non-zero year restricts it to that year.
func (e *CatalogEngine) Export(ctx context.Context, progress chan<- ProgressUpdate, year int) ([]models.Movie, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: store not initialized", shared.ErrServiceUnavailable)
	}

	var criteria map[string]any
	if year != 0 {
		criteria = map[string]any{repositories.CriterionYear: year}
	}

	stored, err := e.store.List(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	movies := make([]models.Movie, 0, len(stored))
	for _, m := range stored {
		movies = append(movies, *m)
	}

	sendProgress(progress, exportedUpdate(len(movies)))
	return movies, nil
}

// Check applies the API's payload rules to a movie built outside HTTP (CLI flags, import files).
func (e *CatalogEngine) Check(p models.MoviePayload) error {
	if err := e.validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}
