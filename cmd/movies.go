package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/negagl/my-movie-api/internal/formatter"
	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/shared"
	"github.com/negagl/my-movie-api/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MoviesList prints the catalog, optionally restricted to one year.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	year, err := yearFlag(cmd)
	if err != nil {
		return err
	}

	engine, _, done, err := r.catalog(cmd)
	if err != nil {
		return err
	}
	defer done()

	movies, err := engine.Export(ctx, nil, year)
	if err != nil {
		return err
	}

	if len(movies) == 0 && format == formatter.FormatTable {
		return r.writePlain("No movies found\n")
	}

	data, err := formatter.Export(movies, format)
	if err != nil {
		return err
	}
	_, err = r.output.Write(data)
	return err
}

// MoviesGet prints a single movie.
func (r *Runner) MoviesGet(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	_, store, done, err := r.catalog(cmd)
	if err != nil {
		return err
	}
	defer done()

	movie, err := store.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie, true)
	}
	return r.writePlain("%s\n", formatter.Table([]models.Movie{*movie}))
}

// MoviesAdd validates the flags with the API's payload rules and stores a new movie.
func (r *Runner) MoviesAdd(ctx context.Context, cmd *cli.Command) error {
	engine, store, done, err := r.catalog(cmd)
	if err != nil {
		return err
	}
	defer done()

	payload := payloadFromFlags(cmd)
	if err := engine.Check(payload); err != nil {
		return err
	}

	movie := payload.Movie(0)
	if err := store.Create(ctx, movie); err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	r.logger.Info("movie created", "id", movie.ID, "title", movie.Title)
	return r.writePlain("✓ Movie created successfully (id %d)\n", movie.ID)
}

// MoviesUpdate replaces the title, year and rating of an existing movie.
func (r *Runner) MoviesUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	engine, store, done, err := r.catalog(cmd)
	if err != nil {
		return err
	}
	defer done()

	payload := payloadFromFlags(cmd)
	if err := engine.Check(payload); err != nil {
		return err
	}

	if err := store.Update(ctx, payload.Movie(id)); err != nil {
		return err
	}

	r.logger.Info("movie updated", "id", id)
	return r.writePlain("✓ Movie updated successfully\n")
}

// MoviesDelete removes a movie by id.
func (r *Runner) MoviesDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	_, store, done, err := r.catalog(cmd)
	if err != nil {
		return err
	}
	defer done()

	movie, err := store.Delete(ctx, id)
	if err != nil {
		return err
	}

	r.logger.Info("movie deleted", "id", movie.ID, "title", movie.Title)
	return r.writePlain("✓ Movie deleted successfully: %s\n", movie.Title)
}

// MoviesExport writes the catalog to a file.
func (r *Runner) MoviesExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if format == formatter.FormatTable {
		return fmt.Errorf("%w: table is a display format, pick json, csv, markdown or txt", shared.ErrInvalidArgument)
	}

	year, err := yearFlag(cmd)
	if err != nil {
		return err
	}

	engine, _, done, err := r.catalog(cmd)
	if err != nil {
		return err
	}
	defer done()

	progressCh := make(chan tasks.ProgressUpdate, 10)
	movies, err := engine.Export(ctx, progressCh, year)
	close(progressCh)
	if err != nil {
		return err
	}
	for update := range progressCh {
		r.logger.Debug(update.Message, "phase", update.Phase)
	}

	path, err := formatter.WriteExport(movies, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("catalog exported", "path", path, "movies", len(movies))
	return r.writePlain("✓ Exported %d movies to %s\n", len(movies), path)
}

// MoviesImport stores every valid movie of a JSON or CSV file. Ids in the file are ignored.
func (r *Runner) MoviesImport(ctx context.Context, cmd *cli.Command) error {
	movies, err := readMovieFile(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	engine, _, done, err := r.catalog(cmd)
	if err != nil {
		return err
	}
	defer done()

	progressCh := make(chan tasks.ProgressUpdate, 50)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for update := range progressCh {
			r.writePlain("   %s\n", update.Message)
		}
	}()

	result, err := engine.Import(ctx, progressCh, movies)
	close(progressCh)
	<-finished

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Import Complete!")
	r.writePlain("Imported: %d/%d\n", result.Imported, result.Total)

	if result.Failed > 0 {
		r.writePlain("\nSkipped %d invalid movies:\n", result.Failed)
		for _, res := range result.Results {
			if res.Error != nil {
				r.writePlain("  - %q (%d): %v\n", res.Movie.Title, res.Movie.Year, res.Error)
			}
		}
	}
	return nil
}

// catalog opens the store for cmd and wraps it in a [tasks.CatalogEngine].
func (r *Runner) catalog(cmd *cli.Command) (*tasks.CatalogEngine, models.MovieStore, func(), error) {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	store, closeStore, err := r.openStore(config)
	if err != nil {
		return nil, nil, nil, err
	}
	return tasks.NewCatalogEngine(store), store, closeStore, nil
}

func payloadFromFlags(cmd *cli.Command) models.MoviePayload {
	return models.NewMoviePayload(cmd.String("title"), cmd.Int("year"), cmd.Float("rating"))
}

func parseMovieID(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: movie id %q is not a number", shared.ErrInvalidArgument, raw)
	}
	if id < models.MinMovieID || id > models.MaxMovieID {
		return 0, fmt.Errorf("%w: movie id must be between %d and %d", shared.ErrInvalidArgument, models.MinMovieID, models.MaxMovieID)
	}
	return id, nil
}

// yearFlag returns the --year flag, or zero when it was not given.
func yearFlag(cmd *cli.Command) (int, error) {
	if !cmd.IsSet("year") {
		return 0, nil
	}

	year := cmd.Int("year")
	if year < models.MinYear || year > models.MaxYear {
		return 0, fmt.Errorf("%w: year must be between %d and %d", shared.ErrInvalidArgument, models.MinYear, models.MaxYear)
	}
	return year, nil
}

// readMovieFile parses a catalog file written by "movies export": CSV by extension, JSON otherwise.
func readMovieFile(path string) ([]models.Movie, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: file path", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return formatter.ParseCSV(f)
	}
	return formatter.ParseJSON(f)
}
