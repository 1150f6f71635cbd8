package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/negagl/my-movie-api/internal/models"
)

// Response messages
const (
	MsgHome             = "hello world"
	MsgInvalidCreds     = "Invalid credentials"
	MsgNotAuthenticated = "Not authenticated"
	MsgInvalidToken     = "Invalid token"
	MsgForbidden        = "Forbidden"
	MsgMovieNotFound    = "Movie not found"
	MsgNoMoviesForYear  = "There are no movies matching the year specified"
	MsgMovieCreated     = "Movie created successfully"
	MsgMovieUpdated     = "Movie updated successfully"
	MsgMovieDeleted     = "Movie deleted successfully"
	MsgInternalError    = "Internal server error"
	MsgBodyTooLarge     = "Request body too large"
)

// Locations reported in [FieldIssue.Loc].
const (
	LocBody  = "body"
	LocPath  = "path"
	LocQuery = "query"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Message is the {"message": "..."} body used for status responses.
type Message struct {
	Message string `json:"message"`
}

// FieldIssue describes one failed boundary check.
type FieldIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationProblem is the 422 body.
type ValidationProblem struct {
	Detail []FieldIssue `json:"detail"`
}

// ValidationError carries the issues found while reading a request.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %v: %s", e.Issues[0].Loc, e.Issues[0].Msg)
}

func invalid(issues ...FieldIssue) *ValidationError {
	return &ValidationError{Issues: issues}
}

// writeJSON marshals v before writing the header. An unencodable value is answered with a 500.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "{\"message\":%q}\n", MsgInternalError)
		return fmt.Errorf("encode response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func writeMessage(w http.ResponseWriter, status int, msg string) error {
	return writeJSON(w, status, Message{Message: msg})
}

// responder writes responses and logs the ones that could not be delivered.
type responder struct {
	logger *log.Logger
}

func (rs responder) json(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		rs.logger.Error("failed to write response", "error", err, "status", status, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
	}
}

func (rs responder) message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	rs.json(w, r, status, Message{Message: msg})
}

func (rs responder) validation(w http.ResponseWriter, r *http.Request, err *ValidationError) {
	rs.json(w, r, http.StatusUnprocessableEntity, ValidationProblem{Detail: err.Issues})
}

// bodyError answers a failed [decodeBody]: 413 when the body exceeded the limit, 422 otherwise.
func (rs responder) bodyError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		rs.validation(w, r, verr)
		return
	}
	if errors.Is(err, errBodyTooLarge) {
		rs.message(w, r, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
		return
	}
	rs.internal(w, r, err)
}

func (rs responder) internal(w http.ResponseWriter, r *http.Request, err error) {
	rs.logger.Error("request failed", "error", err, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
	rs.message(w, r, http.StatusInternalServerError, MsgInternalError)
}

// fieldIssues converts validator failures into issues under loc. name overrides the field name for
// single values checked with [validator.Validate.Var].
func fieldIssues(err error, loc, name string) *ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalid(FieldIssue{Loc: []string{loc}, Msg: err.Error(), Type: "value_error"})
	}

	issues := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if name != "" {
			field = name
		}
		issues = append(issues, FieldIssue{
			Loc:  []string{loc, field},
			Msg:  models.FieldMessage(fe),
			Type: models.FieldType(fe),
		})
	}
	return invalid(issues...)
}

var errBodyTooLarge = errors.New("request body too large")

// decodeBody reads exactly one JSON value into v. It returns errBodyTooLarge when the body exceeds
// maxBodyBytes and a [*ValidationError] for syntax errors, type errors or trailing data.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if tooLarge(err) {
			return errBodyTooLarge
		}
		return invalid(FieldIssue{Loc: []string{LocBody}, Msg: "JSON decode error", Type: "json_invalid"})
	}
	return nil
}

func decodeError(err error) error {
	if tooLarge(err) {
		return errBodyTooLarge
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return invalid(FieldIssue{
			Loc:  []string{LocBody, typeErr.Field},
			Msg:  fmt.Sprintf("Input should be a valid %s", typeName(typeErr.Type.String())),
			Type: typeName(typeErr.Type.String()) + "_type",
		})
	}
	return invalid(FieldIssue{Loc: []string{LocBody}, Msg: "JSON decode error", Type: "json_invalid"})
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func typeName(goType string) string {
	switch goType {
	case "int", "*int":
		return "integer"
	case "float64", "*float64":
		return "number"
	case "string", "*string":
		return "string"
	default:
		return goType
	}
}

// parseInt reads an integer from a path or query value.
func parseInt(raw, loc, name string) (int, *ValidationError) {
	if raw == "" {
		return 0, invalid(FieldIssue{Loc: []string{loc, name}, Msg: "Field required", Type: "missing"})
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(FieldIssue{
			Loc:  []string{loc, name},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		})
	}
	return n, nil
}
