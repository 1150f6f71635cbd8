package tasks

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/shared"
	tu "github.com/negagl/my-movie-api/internal/testing"
)

func drain(ch chan ProgressUpdate) []ProgressUpdate {
	close(ch)
	var updates []ProgressUpdate
	for u := range ch {
		updates = append(updates, u)
	}
	return updates
}

func TestCatalogEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("Seed", func(t *testing.T) {
		t.Run("fills an empty catalog", func(t *testing.T) {
			store := tu.NewMockMovieStore()
			engine := NewCatalogEngine(store)
			progress := make(chan ProgressUpdate, 10)

			n, err := engine.Seed(ctx, progress, models.DefaultMovies())
			if err != nil {
				t.Fatalf("Seed failed: %v", err)
			}
			if n != 3 {
				t.Errorf("expected 3 seeded movies, got %d", n)
			}
			if count, _ := store.Count(ctx); count != 3 {
				t.Errorf("expected 3 stored movies, got %d", count)
			}

			updates := drain(progress)
			if len(updates) != 3 || updates[0].Phase != SeedCatalog {
				t.Errorf("unexpected progress %+v", updates)
			}
		})

		t.Run("leaves a populated catalog alone", func(t *testing.T) {
			store := tu.NewMockMovieStore(models.Movie{Title: "Heat", Year: 1995, Rating: 8.3})
			engine := NewCatalogEngine(store)
			progress := make(chan ProgressUpdate, 10)

			n, err := engine.Seed(ctx, progress, models.DefaultMovies())
			if err != nil {
				t.Fatalf("Seed failed: %v", err)
			}
			if n != 0 {
				t.Errorf("expected nothing seeded, got %d", n)
			}
			if count, _ := store.Count(ctx); count != 1 {
				t.Errorf("expected 1 stored movie, got %d", count)
			}
			if updates := drain(progress); len(updates) != 1 || !strings.Contains(updates[0].Message, "nothing to seed") {
				t.Errorf("unexpected progress %+v", updates)
			}
		})

		t.Run("twice is idempotent", func(t *testing.T) {
			store := tu.NewMockMovieStore()
			engine := NewCatalogEngine(store)

			for i := 0; i < 2; i++ {
				if _, err := engine.Seed(ctx, nil, models.DefaultMovies()); err != nil {
					t.Fatalf("Seed failed: %v", err)
				}
			}
			if count, _ := store.Count(ctx); count != 3 {
				t.Errorf("expected 3 stored movies, got %d", count)
			}
		})

		t.Run("store error", func(t *testing.T) {
			store := tu.NewMockMovieStore()
			store.Err = errors.New("locked")

			if _, err := NewCatalogEngine(store).Seed(ctx, nil, models.DefaultMovies()); err == nil {
				t.Error("expected error from failing store")
			}
		})

		t.Run("no store", func(t *testing.T) {
			if _, err := NewCatalogEngine(nil).Seed(ctx, nil, nil); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})

	t.Run("Import", func(t *testing.T) {
		store := tu.NewMockMovieStore(models.Movie{Title: "Heat", Year: 1995, Rating: 8.3})
		engine := NewCatalogEngine(store)
		progress := make(chan ProgressUpdate, 10)

		result, err := engine.Import(ctx, progress, []models.Movie{
			{ID: 1, Title: "Alien", Year: 1979, Rating: 8.5},
			{Title: "", Year: 2000, Rating: 5},
			{Title: "A title that is far too long", Year: 2000, Rating: 5},
			{Title: "Old Film", Year: 1500, Rating: 3},
		})
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}

		if result.Total != 4 || result.Imported != 2 || result.Failed != 2 {
			t.Errorf("unexpected result %+v", result)
		}
		if result.Results[0].Movie.ID != 2 {
			t.Errorf("expected a fresh id for the first import, got %d", result.Results[0].Movie.ID)
		}
		for _, i := range []int{1, 2} {
			if !errors.Is(result.Results[i].Error, shared.ErrInvalidInput) {
				t.Errorf("result %d: expected ErrInvalidInput, got %v", i, result.Results[i].Error)
			}
		}

		heat, err := store.Get(ctx, 1)
		if err != nil || heat.Title != "Heat" {
			t.Errorf("existing movie must survive an import with a clashing id, got %+v, %v", heat, err)
		}
		if count, _ := store.Count(ctx); count != 3 {
			t.Errorf("expected 3 stored movies, got %d", count)
		}
		if updates := drain(progress); len(updates) != 4 {
			t.Errorf("expected one update per movie, got %d", len(updates))
		}
	})

	t.Run("Import canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewCatalogEngine(tu.NewMockMovieStore()).Import(canceled, nil, models.DefaultMovies())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("Export", func(t *testing.T) {
		store := tu.NewMockMovieStore(models.DefaultMovies()...)
		engine := NewCatalogEngine(store)

		all, err := engine.Export(ctx, nil, 0)
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if len(all) != 3 || all[0].Title != "The Matrix" {
			t.Errorf("unexpected export %+v", all)
		}

		byYear, err := engine.Export(ctx, nil, 1888)
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if len(byYear) != 1 || byYear[0].Title != "Winnie the pooh" {
			t.Errorf("unexpected export %+v", byYear)
		}
	})
}

type recordingService struct {
	mu      sync.Mutex
	created []string
	fail    map[string]error
}

func (r *recordingService) Login(context.Context, models.Credentials) (string, error) { return "", nil }
func (r *recordingService) Movies(context.Context) ([]models.Movie, error)           { return nil, nil }
func (r *recordingService) Movie(context.Context, int) (*models.Movie, error)        { return nil, nil }
func (r *recordingService) MoviesByYear(context.Context, int) ([]models.Movie, error) {
	return nil, nil
}
func (r *recordingService) UpdateMovie(context.Context, int, models.MoviePayload) (string, error) {
	return "", nil
}
func (r *recordingService) DeleteMovie(context.Context, int) (string, error) { return "", nil }

func (r *recordingService) CreateMovie(_ context.Context, p models.MoviePayload) (string, error) {
	title := p.Movie(0).Title
	if err := r.fail[title]; err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, title)
	return "Movie created successfully", nil
}

func TestBulkPush(t *testing.T) {
	movies := []models.Movie{
		{Title: "Alien", Year: 1979, Rating: 8.5},
		{Title: "Heat", Year: 1995, Rating: 8.3},
		{Title: "Broken", Year: 2000, Rating: 1},
		{Title: "Jaws", Year: 1975, Rating: 8},
	}

	t.Run("pushes every movie", func(t *testing.T) {
		srv := &recordingService{fail: map[string]error{"Broken": shared.ErrInvalidInput}}
		progress := make(chan ProgressUpdate, len(movies))

		result, err := BulkPush(context.Background(), progress, srv, movies, BulkPushOpts{NumWorkers: 2, RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkPush failed: %v", err)
		}

		if result.Total != 4 || result.Created != 3 || result.Failed != 1 {
			t.Errorf("unexpected result %+v", result)
		}
		if !errors.Is(result.Results[2].Error, shared.ErrInvalidInput) {
			t.Errorf("expected failure kept at its input position, got %+v", result.Results[2])
		}
		if len(srv.created) != 3 {
			t.Errorf("expected 3 created movies, got %v", srv.created)
		}
		if updates := drain(progress); len(updates) != 4 {
			t.Errorf("expected 4 progress updates, got %d", len(updates))
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := BulkPush(ctx, nil, &recordingService{}, movies, BulkPushOpts{})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if result.Created != 0 {
			t.Errorf("expected nothing created, got %d", result.Created)
		}
	})

	t.Run("no service", func(t *testing.T) {
		if _, err := BulkPush(context.Background(), nil, nil, movies, BulkPushOpts{}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
