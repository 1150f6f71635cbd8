package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/negagl/my-movie-api/internal/auth"
	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/repositories"
	"github.com/negagl/my-movie-api/internal/shared"
)

// HomeHandler serves the greeting at the root path.
type HomeHandler struct{}

func NewHomeHandler() *HomeHandler { return &HomeHandler{} }

func (h *HomeHandler) Routes() []Route {
	return []Route{{Method: http.MethodGet, Path: "/{$}", Handler: h.home}}
}

func (h *HomeHandler) home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MsgHome)
}

// AuthHandler exchanges administrator credentials for a bearer token.
type AuthHandler struct {
	responder
	tokens Tokens
	admin  *auth.Admin
	logger *log.Logger
}

func NewAuthHandler(tokens Tokens, admin *auth.Admin, logger *log.Logger) *AuthHandler {
	return &AuthHandler{responder: responder{logger: logger}, tokens: tokens, admin: admin, logger: logger}
}

func (h *AuthHandler) Routes() []Route {
	return []Route{{Method: http.MethodPost, Path: "/login", Handler: h.login}}
}

// login answers the token as a bare JSON string.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeBody(w, r, &creds); err != nil {
		h.bodyError(w, r, err)
		return
	}

	if err := h.admin.Check(creds); err != nil {
		h.logger.Warn("rejected login", "request_id", RequestIDFrom(r.Context()))
		h.message(w, r, http.StatusUnauthorized, MsgInvalidCreds)
		return
	}

	token, err := h.tokens.Issue(map[string]string{"email": creds.Email})
	if err != nil {
		h.internal(w, r, err)
		return
	}
	h.json(w, r, http.StatusOK, token)
}

// MovieHandler serves the /movies resource.
type MovieHandler struct {
	responder
	store    models.MovieStore
	validate *validator.Validate
	gated    http.Handler
	logger   *log.Logger
}

// NewMovieHandler creates a [MovieHandler]. guard protects the unfiltered listing.
func NewMovieHandler(store models.MovieStore, guard auth.Guard, logger *log.Logger) *MovieHandler {
	h := &MovieHandler{responder: responder{logger: logger}, store: store, validate: models.NewValidator(), logger: logger}
	h.gated = RequireAuth(guard)(http.HandlerFunc(h.list))
	return h
}

func (h *MovieHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/movies", Handler: h.listOrByYear},
		{Method: http.MethodGet, Path: "/movies/{$}", Handler: h.byYear},
		{Method: http.MethodGet, Path: "/movies/{id}", Handler: h.get},
		{Method: http.MethodPost, Path: "/movies", Handler: h.create},
		{Method: http.MethodPut, Path: "/movies/{id}", Handler: h.update},
		{Method: http.MethodDelete, Path: "/movies/{id}", Handler: h.delete},
	}
}

// listOrByYear routes /movies?year=N to the open year lookup and a bare /movies to the gated listing.
func (h *MovieHandler) listOrByYear(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("year") {
		h.byYear(w, r)
		return
	}
	h.gated.ServeHTTP(w, r)
}

func (h *MovieHandler) list(w http.ResponseWriter, r *http.Request) {
	movies, err := h.store.List(r.Context(), nil)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	if movies == nil {
		movies = []*models.Movie{}
	}
	h.json(w, r, http.StatusOK, movies)
}

func (h *MovieHandler) byYear(w http.ResponseWriter, r *http.Request) {
	year, verr := parseInt(r.URL.Query().Get("year"), LocQuery, "year")
	if verr != nil {
		h.validation(w, r, verr)
		return
	}
	if err := h.validate.Var(year, models.YearRule); err != nil {
		h.validation(w, r, fieldIssues(err, LocQuery, "year"))
		return
	}

	movies, err := h.store.List(r.Context(), map[string]any{repositories.CriterionYear: year})
	if err != nil {
		h.internal(w, r, err)
		return
	}
	if len(movies) == 0 {
		h.message(w, r, http.StatusNotFound, MsgNoMoviesForYear)
		return
	}
	h.json(w, r, http.StatusOK, movies)
}

func (h *MovieHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.movieID(w, r)
	if !ok {
		return
	}

	movie, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	h.json(w, r, http.StatusOK, movie)
}

func (h *MovieHandler) create(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.payload(w, r)
	if !ok {
		return
	}

	movie := payload.Movie(0)
	if err := h.store.Create(r.Context(), movie); err != nil {
		h.internal(w, r, err)
		return
	}

	h.logger.Debug("movie created", "id", movie.ID, "request_id", RequestIDFrom(r.Context()))
	h.message(w, r, http.StatusCreated, MsgMovieCreated)
}

// update validates the id before the body, so an out-of-range id wins over a bad payload.
func (h *MovieHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.movieID(w, r)
	if !ok {
		return
	}
	payload, ok := h.payload(w, r)
	if !ok {
		return
	}

	if err := h.store.Update(r.Context(), payload.Movie(id)); err != nil {
		h.storeError(w, r, err)
		return
	}
	h.message(w, r, http.StatusOK, MsgMovieUpdated)
}

func (h *MovieHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.movieID(w, r)
	if !ok {
		return
	}

	if _, err := h.store.Delete(r.Context(), id); err != nil {
		h.storeError(w, r, err)
		return
	}
	h.message(w, r, http.StatusOK, MsgMovieDeleted)
}

// movieID reads and range-checks the {id} path value, answering 422 itself on failure.
func (h *MovieHandler) movieID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, verr := parseInt(r.PathValue("id"), LocPath, "id")
	if verr != nil {
		h.validation(w, r, verr)
		return 0, false
	}
	if err := h.validate.Var(id, models.MovieIDRule); err != nil {
		h.validation(w, r, fieldIssues(err, LocPath, "id"))
		return 0, false
	}
	return id, true
}

// payload decodes and validates a [models.MoviePayload], answering 413 or 422 itself on failure.
func (h *MovieHandler) payload(w http.ResponseWriter, r *http.Request) (models.MoviePayload, bool) {
	var payload models.MoviePayload
	if err := decodeBody(w, r, &payload); err != nil {
		h.bodyError(w, r, err)
		return payload, false
	}
	if err := h.validate.Struct(payload); err != nil {
		h.validation(w, r, fieldIssues(err, LocBody, ""))
		return payload, false
	}
	return payload, true
}

func (h *MovieHandler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, shared.ErrMovieNotFound) {
		h.message(w, r, http.StatusNotFound, MsgMovieNotFound)
		return
	}
	h.internal(w, r, err)
}
