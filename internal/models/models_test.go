package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestMoviePayload(t *testing.T) {
	t.Run("Movie ignores payload id", func(t *testing.T) {
		other := 99
		p := NewMoviePayload("Avatar 2", 2022, 7.9)
		p.ID = &other

		m := p.Movie(2)
		if m.ID != 2 {
			t.Errorf("expected id 2, got %d", m.ID)
		}
		if m.Title != "Avatar 2" || m.Year != 2022 || m.Rating != 7.9 {
			t.Errorf("unexpected movie %+v", m)
		}
	})

	t.Run("Movie tolerates missing optional values", func(t *testing.T) {
		title := "Untitled"
		m := MoviePayload{Title: &title}.Movie(0)
		if m.Title != "Untitled" || m.Year != 0 || m.Rating != 0 {
			t.Errorf("expected zero year and rating, got %+v", m)
		}

		if m := (MoviePayload{}).Movie(3); m.ID != 3 || m.Title != "" {
			t.Errorf("expected empty movie with id 3, got %+v", m)
		}
	})
}

func TestValidator(t *testing.T) {
	v := NewValidator()
	year := 2019
	rating := 8.5
	zero := 0.0
	str := func(s string) *string { return &s }

	tt := []struct {
		name      string
		payload   MoviePayload
		wantField string
		wantTag   string
	}{
		{name: "valid", payload: MoviePayload{Title: str("The Matrix"), Year: &year, Rating: &rating}},
		{name: "zero rating is allowed", payload: MoviePayload{Title: str("Flop"), Year: &year, Rating: &zero}},
		{name: "title at limit", payload: MoviePayload{Title: str(strings.Repeat("a", MaxTitleLength)), Year: &year, Rating: &rating}},
		{name: "multibyte title counts runes", payload: MoviePayload{Title: str(strings.Repeat("é", MaxTitleLength)), Year: &year, Rating: &rating}},
		{name: "empty title", payload: MoviePayload{Title: str(""), Year: &year, Rating: &rating}, wantField: "title", wantTag: "min"},
		{name: "missing title", payload: MoviePayload{Year: &year, Rating: &rating}, wantField: "title", wantTag: "required"},
		{name: "long title", payload: MoviePayload{Title: str(strings.Repeat("a", MaxTitleLength+1)), Year: &year, Rating: &rating}, wantField: "title", wantTag: "max"},
		{name: "missing year", payload: MoviePayload{Title: str("Avatar"), Rating: &rating}, wantField: "year", wantTag: "required"},
		{name: "missing rating", payload: MoviePayload{Title: str("Avatar"), Year: &year}, wantField: "rating", wantTag: "required"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.payload)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid payload, got %v", err)
				}
				return
			}

			var ve validator.ValidationErrors
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if ve[0].Field() != tc.wantField {
				t.Errorf("expected field %s, got %s", tc.wantField, ve[0].Field())
			}
			if ve[0].Tag() != tc.wantTag {
				t.Errorf("expected tag %s, got %s", tc.wantTag, ve[0].Tag())
			}
		})
	}
}

func TestRules(t *testing.T) {
	v := NewValidator()

	tt := []struct {
		name  string
		value int
		rule  string
		ok    bool
	}{
		{name: "id lower bound", value: MinMovieID, rule: MovieIDRule, ok: true},
		{name: "id upper bound", value: MaxMovieID, rule: MovieIDRule, ok: true},
		{name: "id zero", value: 0, rule: MovieIDRule},
		{name: "id too large", value: MaxMovieID + 1, rule: MovieIDRule},
		{name: "year lower bound", value: MinYear, rule: YearRule, ok: true},
		{name: "year before range", value: MinYear - 1, rule: YearRule},
		{name: "year after range", value: MaxYear + 1, rule: YearRule},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Var(tc.value, tc.rule)
			if (err == nil) != tc.ok {
				t.Errorf("Var(%d, %q) error = %v, want ok=%v", tc.value, tc.rule, err, tc.ok)
			}
		})
	}
}

func TestFieldMessage(t *testing.T) {
	v := NewValidator()
	year := 2000
	rating := 1.0

	title := strings.Repeat("x", 20)
	err := v.Struct(MoviePayload{Title: &title, Year: &year, Rating: &rating})
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation errors, got %v", err)
	}

	if got := FieldMessage(ve[0]); got != "String should have at most 15 characters" {
		t.Errorf("unexpected message %q", got)
	}
	if got := FieldType(ve[0]); got != "string_too_long" {
		t.Errorf("unexpected type %q", got)
	}

	err = v.Var(1700, YearRule)
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if got := FieldMessage(ve[0]); got != "Input should be greater than or equal to 1800" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestDefaultMovies(t *testing.T) {
	movies := DefaultMovies()
	if len(movies) != 3 {
		t.Fatalf("expected 3 default movies, got %d", len(movies))
	}
	for _, m := range movies {
		if m.ID != 0 {
			t.Errorf("default movies should leave ids to the store, got %d", m.ID)
		}
	}
}
