package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/negagl/my-movie-api/internal/models"
	tu "github.com/negagl/my-movie-api/internal/testing"
)

// brokenWriter accepts headers but fails every body write, like a client that hung up.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (w brokenWriter) Write(p []byte) (int, error) {
	return (&tu.FWriter{}).Write(p)
}

func TestWriteJSON(t *testing.T) {
	t.Run("encodes value", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if err := writeJSON(rec, http.StatusCreated, Message{Message: MsgMovieCreated}); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}

		if rec.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}
		if msg := decodeMessage(t, rec); msg != MsgMovieCreated {
			t.Errorf("expected %q, got %q", MsgMovieCreated, msg)
		}
	})

	t.Run("unencodable value answers 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := writeJSON(rec, http.StatusOK, make(chan int))
		if err == nil || !strings.Contains(err.Error(), "encode response") {
			t.Fatalf("expected encode error, got %v", err)
		}

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
		if msg := decodeMessage(t, rec); msg != MsgInternalError {
			t.Errorf("expected %q, got %q", MsgInternalError, msg)
		}
	})

	t.Run("write failure is returned", func(t *testing.T) {
		err := writeJSON(brokenWriter{httptest.NewRecorder()}, http.StatusOK, MsgHome)
		if err == nil || !strings.Contains(err.Error(), "write response") {
			t.Fatalf("expected write error, got %v", err)
		}
	})
}

func TestResponderLogsFailures(t *testing.T) {
	tt := []struct {
		name string
		w    func() http.ResponseWriter
		v    any
	}{
		{name: "client gone", w: func() http.ResponseWriter { return brokenWriter{httptest.NewRecorder()} }, v: Message{Message: MsgMovieUpdated}},
		{name: "unencodable value", w: func() http.ResponseWriter { return httptest.NewRecorder() }, v: func() {}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			logs := &bytes.Buffer{}
			rs := responder{logger: log.New(logs)}

			rs.json(tc.w(), httptest.NewRequest(http.MethodPut, "/movies/1", nil), http.StatusOK, tc.v)

			if !strings.Contains(logs.String(), "failed to write response") {
				t.Errorf("expected failure to be logged, got %q", logs.String())
			}
			if !strings.Contains(logs.String(), "/movies/1") {
				t.Errorf("expected path in log, got %q", logs.String())
			}
		})
	}

	t.Run("successful write is silent", func(t *testing.T) {
		logs := &bytes.Buffer{}
		rs := responder{logger: log.New(logs)}

		rs.message(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, MsgHome)
		if logs.Len() != 0 {
			t.Errorf("expected no log output, got %q", logs.String())
		}
	})
}

func TestDecodeBody(t *testing.T) {
	valid := `{"title":"Heat","year":1995,"rating":8.3}`

	tt := []struct {
		name     string
		body     string
		tooLarge bool
		issue    string
	}{
		{name: "single object", body: valid},
		{name: "trailing whitespace", body: valid + " \n\t"},
		{name: "trailing garbage", body: valid + " trailing", issue: "json_invalid"},
		{name: "second object", body: valid + `{"title":"Jaws"}`, issue: "json_invalid"},
		{name: "second scalar", body: valid + " 1", issue: "json_invalid"},
		{name: "wrong field type", body: `{"title":7}`, issue: "string_type"},
		{name: "oversized value", body: `{"title":"` + strings.Repeat("a", 2<<20) + `"}`, tooLarge: true},
		{name: "oversized trailing data", body: valid + strings.Repeat(" ", 2<<20), tooLarge: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(tc.body))
			var payload models.MoviePayload

			err := decodeBody(httptest.NewRecorder(), req, &payload)
			switch {
			case tc.tooLarge:
				if !errors.Is(err, errBodyTooLarge) {
					t.Fatalf("expected errBodyTooLarge, got %v", err)
				}
			case tc.issue != "":
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if verr.Issues[0].Type != tc.issue {
					t.Errorf("expected issue %q, got %q", tc.issue, verr.Issues[0].Type)
				}
			default:
				if err != nil {
					t.Fatalf("expected body to decode, got %v", err)
				}
				if payload.Title == nil || *payload.Title != "Heat" {
					t.Errorf("unexpected payload %+v", payload)
				}
			}
		})
	}
}
