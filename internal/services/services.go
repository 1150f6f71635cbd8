// package services defines interface Service for talking to a running catalog API
package services

import (
	"context"

	"github.com/negagl/my-movie-api/internal/models"
)

// Service defines the remote operations of the catalog API.
type Service interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds models.Credentials) (string, error)

	// Movies lists the whole catalog. Requires the administrator's token.
	Movies(ctx context.Context) ([]models.Movie, error)

	// Movie retrieves a movie by id.
	Movie(ctx context.Context, id int) (*models.Movie, error)

	// MoviesByYear lists the movies released in year.
	MoviesByYear(ctx context.Context, year int) ([]models.Movie, error)

	// CreateMovie, UpdateMovie and DeleteMovie return the server's confirmation message.
	CreateMovie(ctx context.Context, payload models.MoviePayload) (string, error)
	UpdateMovie(ctx context.Context, id int, payload models.MoviePayload) (string, error)
	DeleteMovie(ctx context.Context, id int) (string, error)
}
