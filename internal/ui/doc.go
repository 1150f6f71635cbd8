// Package ui implements an interactive terminal catalog browser using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the local catalog:
//  1. [MovieListView] : Browse and filter stored movies
//  2. [DetailView] : Inspect a single movie
//  3. [ConfirmView] : Confirm deleting the selected movie
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Store calls run as [tea.Cmd] values so the terminal never blocks on SQLite.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, d, y/n, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
