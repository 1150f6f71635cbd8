// package models defines the data model for the movie catalog
package models

import (
	"context"
)

// Boundary limits enforced before a handler or command touches the store.
const (
	MinMovieID     = 1
	MaxMovieID     = 2000
	MinYear        = 1800
	MaxYear        = 2050
	MaxTitleLength = 15
)

// Movie is a single catalog entry. ID is assigned by the store and immutable afterwards.
type Movie struct {
	ID     int     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title  string  `json:"title" gorm:"not null"`
	Year   int     `json:"year" gorm:"not null;index:idx_movies_year"`
	Rating float64 `json:"rating" gorm:"not null"`
}

// TableName maps [Movie] onto the movies table.
func (Movie) TableName() string { return "movies" }

// MoviePayload is the create/update request body.
//
// Fields are pointers so a missing field fails "required" while an empty title or a zero number
// reaches the range checks.
type MoviePayload struct {
	ID     *int     `json:"id"`
	Title  *string  `json:"title" validate:"required,min=1,max=15"`
	Year   *int     `json:"year" validate:"required"`
	Rating *float64 `json:"rating" validate:"required"`
}

// Movie converts a validated payload into a [Movie] with the given id. The payload's own id is ignored.
func (p MoviePayload) Movie(id int) *Movie {
	m := &Movie{ID: id}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Year != nil {
		m.Year = *p.Year
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	return m
}

// NewMoviePayload builds a payload from plain values, as the CLI does.
func NewMoviePayload(title string, year int, rating float64) MoviePayload {
	return MoviePayload{Title: &title, Year: &year, Rating: &rating}
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T any] interface {
	Create(ctx context.Context, model T) error                      // Create inserts a new model and sets its id
	Get(ctx context.Context, id int) (T, error)                     // Get retrieves a model by its id
	Update(ctx context.Context, model T) error                      // Update overwrites the mutable fields of an existing model
	Delete(ctx context.Context, id int) (T, error)                  // Delete removes a model by id and returns what was removed
	List(ctx context.Context, criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// MovieStore is the persistence contract for the catalog.
//
// List understands the "year" criterion (int). Get, Update and Delete return [shared.ErrMovieNotFound] for unknown ids.
type MovieStore interface {
	Repository[*Movie]
	Count(ctx context.Context) (int64, error)
}

// DefaultMovies is the starter catalog loaded by the seed task.
func DefaultMovies() []Movie {
	return []Movie{
		{Title: "The Matrix", Year: 2019, Rating: 8.5},
		{Title: "Avatar", Year: 2000, Rating: 8.5},
		{Title: "Winnie the pooh", Year: 1888, Rating: 8.5},
	}
}
