// package formatter renders the movie catalog to various formats (CSV, Markdown, plain text, JSON, terminal table)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatTable    Format = "table"
)

var csvHeaders = []string{"ID", "Title", "Year", "Rating"}

// ParseFormat resolves a format name. "md" and "text" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "table", "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
	}
}

// Ext returns the file extension used when writing the format to disk.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatTable:
		return "txt"
	default:
		return string(f)
	}
}

// Export renders movies in the given format.
func Export(movies []models.Movie, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return ExportToJSON(movies)
	case FormatCSV:
		return ExportToCSV(movies)
	case FormatMarkdown:
		return ExportToMarkdown("Movies", movies)
	case FormatText:
		return ExportToText(movies)
	case FormatTable:
		return []byte(Table(movies) + "\n"), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
	}
}

// ExportToJSON converts movies to an indented JSON array
func ExportToJSON(movies []models.Movie) ([]byte, error) {
	if movies == nil {
		movies = []models.Movie{}
	}
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal movies: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToCSV converts movies to CSV format with columns: ID, Title, Year, Rating
func ExportToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range movies {
		record := []string{
			strconv.Itoa(movie.ID),
			movie.Title,
			strconv.Itoa(movie.Year),
			FormatRating(movie.Rating),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts movies to a Markdown document with a table of the catalog
func ExportToMarkdown(title string, movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Movies**: %d\n\n", len(movies))

	if len(movies) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| ID | Title | Year | Rating |\n")
	buf.WriteString("|---:|---|---:|---:|\n")
	for _, movie := range movies {
		fmt.Fprintf(&buf, "| %d | %s | %d | %s |\n", movie.ID, escapeMarkdown(movie.Title), movie.Year, FormatRating(movie.Rating))
	}

	return buf.Bytes(), nil
}

// ExportToText converts movies to plain text format
func ExportToText(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Movies: %d\n\n", len(movies))
	for i, movie := range movies {
		fmt.Fprintf(&buf, "%d. %s (%d) - %s\n", i+1, movie.Title, movie.Year, FormatRating(movie.Rating))
	}

	return buf.Bytes(), nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d79921")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#665c54"))
)

// Table renders movies as a bordered terminal table
func Table(movies []models.Movie) string {
	rows := make([][]string, 0, len(movies))
	for _, movie := range movies {
		rows = append(rows, []string{strconv.Itoa(movie.ID), movie.Title, strconv.Itoa(movie.Year), FormatRating(movie.Rating)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(csvHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// FormatRating renders a rating in its shortest decimal form (8.5, 7, 6.25)
func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}

// WriteExport renders movies and writes them to path.
//
// Defaults to movies_export.{ext} as the filename.
func WriteExport(movies []models.Movie, f Format, path string) (string, error) {
	if path == "" {
		path = "movies_export." + f.Ext()
	}

	data, err := Export(movies, f)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s export: %w", f, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// ParseJSON reads a JSON array of movies, as written by [ExportToJSON]
func ParseJSON(r io.Reader) ([]models.Movie, error) {
	var movies []models.Movie
	if err := json.NewDecoder(r).Decode(&movies); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %v", shared.ErrInvalidInput, err)
	}
	return movies, nil
}

// ParseCSV reads movies from CSV with the header written by [ExportToCSV]. The ID column is optional.
func ParseCSV(r io.Reader) ([]models.Movie, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse CSV: %v", shared.ErrInvalidInput, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: CSV is empty", shared.ErrInvalidInput)
	}

	cols := map[string]int{}
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"title", "year", "rating"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: CSV is missing the %q column", shared.ErrInvalidInput, required)
		}
	}

	movies := make([]models.Movie, 0, len(records)-1)
	for line, record := range records[1:] {
		movie := models.Movie{Title: record[cols["title"]]}

		if movie.Year, err = strconv.Atoi(record[cols["year"]]); err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid year %q", shared.ErrInvalidInput, line+2, record[cols["year"]])
		}
		if movie.Rating, err = strconv.ParseFloat(record[cols["rating"]], 64); err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid rating %q", shared.ErrInvalidInput, line+2, record[cols["rating"]])
		}
		if idx, ok := cols["id"]; ok && record[idx] != "" {
			if movie.ID, err = strconv.Atoi(record[idx]); err != nil {
				return nil, fmt.Errorf("%w: line %d: invalid id %q", shared.ErrInvalidInput, line+2, record[idx])
			}
		}

		movies = append(movies, movie)
	}

	return movies, nil
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
