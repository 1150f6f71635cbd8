package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/negagl/my-movie-api/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgMoviesFetched MsgKind = iota
	MsgMovieDeleted
)

type moviesFetched struct {
	movies []*models.Movie
	err    error
}

type movieDeleted struct {
	movie *models.Movie
	err   error
}

// moviesFetchedMsg is the constructor for [MsgMoviesFetched]
func moviesFetchedMsg(movies []*models.Movie, err error) Msg {
	return Msg{kind: MsgMoviesFetched, data: moviesFetched{movies, err}}
}

// movieDeletedMsg is the constructor for [MsgMovieDeleted]
func movieDeletedMsg(movie *models.Movie, err error) Msg {
	return Msg{kind: MsgMovieDeleted, data: movieDeleted{movie, err}}
}
