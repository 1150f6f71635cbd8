package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/negagl/my-movie-api/internal/models"
	tu "github.com/negagl/my-movie-api/internal/testing"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model and follows the returned command chain until it yields no message.
func send(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()

	for i := 0; msg != nil && i < 10; i++ {
		_, cmd := m.Update(msg)
		if cmd == nil {
			return
		}
		msg = cmd()
		if _, ok := msg.(Msg); !ok {
			return
		}
	}
}

func loadedModel(t *testing.T, store models.MovieStore) *Model {
	t.Helper()

	m := NewModel(context.Background(), store, nil)
	send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	send(t, m, m.Init()())
	return m
}

func TestModel(t *testing.T) {
	t.Run("loads the catalog", func(t *testing.T) {
		m := loadedModel(t, tu.NewMockMovieStore(models.DefaultMovies()...))

		if got := len(m.list.Items()); got != 3 {
			t.Fatalf("expected 3 items, got %d", got)
		}
		if !strings.Contains(m.View(), "The Matrix") {
			t.Errorf("expected list view to show movies, got:\n%s", m.View())
		}
	})

	t.Run("detail and back", func(t *testing.T) {
		m := loadedModel(t, tu.NewMockMovieStore(models.DefaultMovies()...))

		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		if m.view != DetailView || m.selected == nil {
			t.Fatalf("expected detail view, got %v", m.view)
		}
		if view := m.View(); !strings.Contains(view, "2019") {
			t.Errorf("expected year in detail view, got:\n%s", view)
		}

		send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.view != MovieListView || m.selected != nil {
			t.Errorf("expected list view after esc, got %v", m.view)
		}
	})

	t.Run("delete with confirmation", func(t *testing.T) {
		store := tu.NewMockMovieStore(models.DefaultMovies()...)
		m := loadedModel(t, store)

		send(t, m, runes("d"))
		if m.view != ConfirmView {
			t.Fatalf("expected confirm view, got %v", m.view)
		}
		if !strings.Contains(m.View(), "Delete 'The Matrix'") {
			t.Errorf("unexpected confirm view:\n%s", m.View())
		}

		send(t, m, runes("y"))
		if m.view != MovieListView {
			t.Errorf("expected list view after delete, got %v", m.view)
		}
		if n, _ := store.Count(context.Background()); n != 2 {
			t.Errorf("expected 2 movies left, got %d", n)
		}
		if got := len(m.list.Items()); got != 2 {
			t.Errorf("expected list to reload with 2 items, got %d", got)
		}
		if !strings.Contains(m.status, "deleted") {
			t.Errorf("expected status message, got %q", m.status)
		}
	})

	t.Run("declining keeps the movie", func(t *testing.T) {
		store := tu.NewMockMovieStore(models.DefaultMovies()...)
		m := loadedModel(t, store)

		send(t, m, runes("d"))
		send(t, m, runes("n"))
		if m.view != DetailView {
			t.Errorf("expected detail view after declining, got %v", m.view)
		}
		if n, _ := store.Count(context.Background()); n != 3 {
			t.Errorf("expected 3 movies, got %d", n)
		}
	})

	t.Run("empty catalog ignores selection keys", func(t *testing.T) {
		m := loadedModel(t, tu.NewMockMovieStore())

		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		send(t, m, runes("d"))
		if m.view != MovieListView {
			t.Errorf("expected to stay on the list, got %v", m.view)
		}
	})

	t.Run("store error", func(t *testing.T) {
		store := tu.NewMockMovieStore()
		store.Err = errors.New("database is locked")
		m := loadedModel(t, store)

		if !strings.Contains(m.View(), "database is locked") {
			t.Errorf("expected error view, got:\n%s", m.View())
		}
	})

	t.Run("quit", func(t *testing.T) {
		m := loadedModel(t, tu.NewMockMovieStore())

		_, cmd := m.Update(runes("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestPaletteRating(t *testing.T) {
	palette := NewPalette(Colors{High: "#00FF00", Mid: "#FFFF00", Low: "#FF0000"})

	tt := []struct {
		score float64
		want  lipgloss.Color
	}{
		{score: 9.1, want: "#00FF00"},
		{score: 8, want: "#00FF00"},
		{score: 7.9, want: "#FFFF00"},
		{score: 5, want: "#FFFF00"},
		{score: 4.9, want: "#FF0000"},
		{score: 0, want: "#FF0000"},
	}

	for _, tc := range tt {
		if got := palette.Rating(tc.score).GetForeground(); got != tc.want {
			t.Errorf("Rating(%v): expected %v, got %v", tc.score, tc.want, got)
		}
	}
}
