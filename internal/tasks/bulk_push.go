package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/services"
	"github.com/negagl/my-movie-api/internal/shared"
	"golang.org/x/time/rate"
)

// BulkPushOpts contains configuration for pushing movies to a running API.
type BulkPushOpts struct {
	NumWorkers int     // Concurrent workers (default: 3)
	RateLimit  float64 // Requests per second (default: 5)
}

// BulkPushResult summarizes a push.
type BulkPushResult struct {
	Total   int
	Created int
	Failed  int
	Results []MovieResult
}

type pushJob struct {
	index int
	movie models.Movie
}

// BulkPush creates movies through the API concurrently with rate limiting and progress tracking.
//
// Failures are collected per movie; results keep the input order.
func BulkPush(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	srv services.Service,
	movies []models.Movie,
	opts BulkPushOpts,
) (*BulkPushResult, error) {
	if srv == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	result := &BulkPushResult{
		Total:   len(movies),
		Results: make([]MovieResult, len(movies)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan pushJob, len(movies))
	type indexed struct {
		index int
		res   MovieResult
		msg   string
	}
	results := make(chan indexed, len(movies))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					results <- indexed{index: job.index, res: MovieResult{Movie: job.movie, Error: err}}
					continue
				}

				payload := models.NewMoviePayload(job.movie.Title, job.movie.Year, job.movie.Rating)
				msg, err := srv.CreateMovie(ctx, payload)
				results <- indexed{index: job.index, res: MovieResult{Movie: job.movie, Error: err}, msg: msg}
			}
		}()
	}

	for i, m := range movies {
		jobs <- pushJob{index: i, movie: m}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for r := range results {
		completed++
		result.Results[r.index] = r.res

		if r.res.Error != nil {
			result.Failed++
			sendProgress(prog, movieFailedUpdate(PushMovies, completed, len(movies), r.res.Movie.Title, r.res.Error))
			continue
		}
		result.Created++
		sendProgress(prog, pushedUpdate(completed, len(movies), r.res.Movie.Title, r.msg))
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}
