package main

import (
	"context"
	"strings"

	"github.com/negagl/my-movie-api/internal/formatter"
	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/services"
	"github.com/negagl/my-movie-api/internal/tasks"
	"github.com/urfave/cli/v3"
)

// RemoteMovies lists movies from a running API. With --year it uses the public year query,
// otherwise the gated full listing, which needs --token or MMA_TOKEN.
func (r *Runner) RemoteMovies(ctx context.Context, cmd *cli.Command) error {
	api := r.remoteAPI(cmd)

	year, err := yearFlag(cmd)
	if err != nil {
		return err
	}

	var movies []models.Movie
	if year != 0 {
		r.logger.Info("GET request", "path", "/movies", "year", year)
		movies, err = api.MoviesByYear(ctx, year)
	} else {
		r.logger.Info("GET request", "path", "/movies")
		movies, err = api.Movies(ctx)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, true)
	}
	if len(movies) == 0 {
		return r.writePlain("No movies found\n")
	}
	return r.writePlain("%s\n", formatter.Table(movies))
}

// RemoteGet prints a single movie from a running API.
func (r *Runner) RemoteGet(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	movie, err := r.remoteAPI(cmd).Movie(ctx, id)
	if err != nil {
		return err
	}
	return r.writeJSON(movie, true)
}

// RemotePush creates every movie of a JSON or CSV file on a running API with a rate limited worker pool.
func (r *Runner) RemotePush(ctx context.Context, cmd *cli.Command) error {
	movies, err := readMovieFile(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	r.logger.Info("pushing movies", "count", len(movies))
	r.writePlain("Pushing %d movies...\n\n", len(movies))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for update := range progressCh {
			r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	result, err := tasks.BulkPush(ctx, progressCh, r.remoteAPI(cmd), movies, tasks.BulkPushOpts{
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(progressCh)
	<-finished

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Push Complete!")
	r.writePlain("Created: %d/%d\n", result.Created, result.Total)

	if result.Failed > 0 {
		r.writePlain("\nFailed to create %d movies:\n", result.Failed)
		for _, res := range result.Results {
			if res.Error != nil {
				r.writePlain("  - %q (%d): %v\n", res.Movie.Title, res.Movie.Year, res.Error)
			}
		}
	}
	return nil
}

// remoteAPI returns the API client for cmd, honouring --url and --token.
func (r *Runner) remoteAPI(cmd *cli.Command) *services.APIService {
	api := r.api
	if url := strings.TrimSpace(cmd.String("url")); url != "" {
		api = services.NewAPIService(url, r.httpClient)
	}
	if token := strings.TrimSpace(cmd.String("token")); token != "" {
		api.SetToken(token)
	}
	return api
}
