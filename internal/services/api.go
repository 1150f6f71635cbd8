// API service for calling the movie catalog REST API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/shared"
)

const defaultBaseURL = "http://127.0.0.1:8000"

// APIService implements [Service] over HTTP.
type APIService struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewAPIService creates a new client for the catalog API at baseURL.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// SetToken sets the bearer token sent with every request.
func (a *APIService) SetToken(token string) {
	a.token = token
}

// APIError is a non-2xx response from the catalog API.
type APIError struct {
	StatusCode int
	Message    string
	Detail     []FieldIssue
	kind       error
}

// FieldIssue mirrors one entry of a 422 response.
type FieldIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%v (status %d): %s", e.kind, e.StatusCode, e.Message)
	case len(e.Detail) > 0:
		issues := make([]string, 0, len(e.Detail))
		for _, d := range e.Detail {
			issues = append(issues, fmt.Sprintf("%s: %s", strings.Join(d.Loc, "."), d.Msg))
		}
		return fmt.Sprintf("%v (status %d): %s", e.kind, e.StatusCode, strings.Join(issues, "; "))
	default:
		return fmt.Sprintf("%v: status %d", e.kind, e.StatusCode)
	}
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// Login posts creds to /login and stores the returned token for later calls.
func (a *APIService) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var token string
	if err := a.doRequest(ctx, http.MethodPost, "/login", creds, &token); err != nil {
		return "", err
	}

	a.token = token
	return token, nil
}

// Movies calls GET /movies with the stored token.
func (a *APIService) Movies(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := a.doRequest(ctx, http.MethodGet, "/movies", nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Movie calls GET /movies/{id}.
func (a *APIService) Movie(ctx context.Context, id int) (*models.Movie, error) {
	var movie models.Movie
	if err := a.doRequest(ctx, http.MethodGet, "/movies/"+strconv.Itoa(id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// MoviesByYear calls GET /movies?year=N.
func (a *APIService) MoviesByYear(ctx context.Context, year int) ([]models.Movie, error) {
	q := url.Values{"year": {strconv.Itoa(year)}}

	var movies []models.Movie
	if err := a.doRequest(ctx, http.MethodGet, "/movies?"+q.Encode(), nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// CreateMovie calls POST /movies.
func (a *APIService) CreateMovie(ctx context.Context, payload models.MoviePayload) (string, error) {
	return a.message(ctx, http.MethodPost, "/movies", payload)
}

// UpdateMovie calls PUT /movies/{id}.
func (a *APIService) UpdateMovie(ctx context.Context, id int, payload models.MoviePayload) (string, error) {
	return a.message(ctx, http.MethodPut, "/movies/"+strconv.Itoa(id), payload)
}

// DeleteMovie calls DELETE /movies/{id}.
func (a *APIService) DeleteMovie(ctx context.Context, id int) (string, error) {
	return a.message(ctx, http.MethodDelete, "/movies/"+strconv.Itoa(id), nil)
}

func (a *APIService) message(ctx context.Context, method, path string, body any) (string, error) {
	var msg struct {
		Message string `json:"message"`
	}
	if err := a.doRequest(ctx, method, path, body, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

func (a *APIService) doRequest(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, path, data)
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func newAPIError(status int, path string, body []byte) *APIError {
	var errResp struct {
		Message string       `json:"message"`
		Detail  []FieldIssue `json:"detail"`
	}
	json.Unmarshal(body, &errResp)

	apiErr := &APIError{StatusCode: status, Message: errResp.Message, Detail: errResp.Detail}
	switch {
	case status == http.StatusNotFound:
		apiErr.kind = shared.ErrMovieNotFound
	case status == http.StatusUnauthorized && path == "/login":
		apiErr.kind = shared.ErrInvalidCredentials
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.kind = shared.ErrNotAuthenticated
	case status == http.StatusUnprocessableEntity:
		apiErr.kind = shared.ErrInvalidInput
	default:
		apiErr.kind = shared.ErrAPIRequest
	}
	return apiErr
}

var _ Service = (*APIService)(nil)
