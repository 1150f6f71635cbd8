package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/negagl/my-movie-api/internal/formatter"
	"github.com/negagl/my-movie-api/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MovieListView ViewState = iota
	DetailView
	ConfirmView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	store    models.MovieStore
	logger   *log.Logger
	width    int
	height   int
	list     list.Model
	selected *models.Movie
	status   string
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, store models.MovieStore, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Movies"
	l.SetShowHelp(false)

	return &Model{
		ctx:    ctx,
		view:   MovieListView,
		store:  store,
		logger: logger,
		list:   l,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init initializes the TUI by loading the catalog.
func (m *Model) Init() tea.Cmd {
	return m.fetchMovies()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MovieListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgMoviesFetched:
		data := msg.data.(moviesFetched)
		if data.err != nil {
			m.err = data.err
			m.logger.Error("failed to load movies", "error", data.err)
			return m, nil
		}
		m.err = nil
		m.list.Title = fmt.Sprintf("Movies (%d)", len(data.movies))
		return m, m.list.SetItems(movieItems(data.movies))

	case MsgMovieDeleted:
		data := msg.data.(movieDeleted)
		m.view = MovieListView
		m.selected = nil
		if data.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("✗ delete failed: %v", data.err))
			m.logger.Warn("delete failed", "error", data.err)
			return m, m.fetchMovies()
		}
		m.status = styles.ok.Render(fmt.Sprintf("✓ deleted %q", data.movie.Title))
		m.logger.Info("movie deleted", "id", data.movie.ID)
		return m, m.fetchMovies()
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" +
			m.help.ShortHelpView([]key.Binding{m.keys.reload, m.keys.quit})
	}

	switch m.view {
	case MovieListView:
		return m.renderList()
	case DetailView:
		return m.renderDetail()
	case ConfirmView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.reload):
		m.status = ""
		return m, m.fetchMovies()
	case key.Matches(msg, m.keys.enter):
		if m.selectCurrent() {
			m.view = DetailView
		}
		return m, nil
	case key.Matches(msg, m.keys.delete):
		if m.selectCurrent() {
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = MovieListView
		m.selected = nil
	case key.Matches(msg, m.keys.delete):
		m.view = ConfirmView
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m, m.deleteMovie(m.selected.ID)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.view = DetailView
	}
	return m, nil
}

func (m *Model) selectCurrent() bool {
	item, ok := m.list.SelectedItem().(movieItem)
	if !ok {
		return false
	}
	movie := item.movie
	m.selected = &movie
	return true
}

func (m *Model) fetchMovies() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.store.List(m.ctx, nil)
		return moviesFetchedMsg(movies, err)
	}
}

func (m *Model) deleteMovie(id int) tea.Cmd {
	return func() tea.Msg {
		movie, err := m.store.Delete(m.ctx, id)
		return movieDeletedMsg(movie, err)
	}
}

func (m *Model) renderList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.delete, m.keys.reload, m.keys.quit}
	out := m.list.View()
	if m.status != "" {
		out += "\n" + m.status
	}
	return fmt.Sprintf("%s\n\n%s", out, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDetail() string {
	mv := m.selected
	title := styles.title.Render(mv.Title)
	info := fmt.Sprintf("%s%d\n%s%d\n%s%s",
		styles.label.Render("ID"), mv.ID,
		styles.label.Render("Year"), mv.Year,
		styles.label.Render("Rating"), styles.Rating(mv.Rating).Render("★ "+formatter.FormatRating(mv.Rating)),
	)

	helpKeys := []key.Binding{m.keys.delete, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	title := styles.warn.Render(fmt.Sprintf("Delete '%s' (%d)?", m.selected.Title, m.selected.Year))
	note := styles.help.Render("This cannot be undone.")

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n%s\n\n%s", title, note, m.help.ShortHelpView(helpKeys))
}
