// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/shared"
)

// MockMovieStore is an in-memory [models.MovieStore].
//
// Setting Err makes every call fail with it, which exercises the 500 paths of callers.
type MockMovieStore struct {
	mu     sync.Mutex
	movies map[int]models.Movie
	nextID int
	Err    error
}

// NewMockMovieStore creates a [MockMovieStore] holding copies of movies with ids assigned from 1.
func NewMockMovieStore(movies ...models.Movie) *MockMovieStore {
	s := &MockMovieStore{movies: map[int]models.Movie{}, nextID: 1}
	for _, m := range movies {
		s.Create(context.Background(), &m)
	}
	return s
}

func (s *MockMovieStore) Create(ctx context.Context, movie *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	movie.ID = s.nextID
	s.nextID++
	s.movies[movie.ID] = *movie
	return nil
}

func (s *MockMovieStore) Get(ctx context.Context, id int) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	m, ok := s.movies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", shared.ErrMovieNotFound, id)
	}
	return &m, nil
}

func (s *MockMovieStore) Update(ctx context.Context, movie *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.movies[movie.ID]; !ok {
		return fmt.Errorf("%w: %d", shared.ErrMovieNotFound, movie.ID)
	}
	s.movies[movie.ID] = *movie
	return nil
}

func (s *MockMovieStore) Delete(ctx context.Context, id int) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	m, ok := s.movies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", shared.ErrMovieNotFound, id)
	}
	delete(s.movies, id)
	return &m, nil
}

// List supports the "year" criterion only.
func (s *MockMovieStore) List(ctx context.Context, criteria map[string]any) ([]*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	year, filtered := criteria["year"].(int)
	movies := []*models.Movie{}
	for _, m := range s.movies {
		if filtered && m.Year != year {
			continue
		}
		movies = append(movies, &m)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (s *MockMovieStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.movies)), nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
