package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/negagl/my-movie-api/internal/formatter"
	"github.com/negagl/my-movie-api/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	return fmt.Sprintf("#%d • %d • ★ %s", i.movie.ID, i.movie.Year, formatter.FormatRating(i.movie.Rating))
}

func movieItems(movies []*models.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: *m}
	}
	return items
}
