package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/shared"
	th "github.com/negagl/my-movie-api/internal/testing"
)

func testMovies() []models.Movie {
	return []models.Movie{
		{ID: 1, Title: "The Matrix", Year: 2019, Rating: 8.5},
		{ID: 2, Title: "Avatar", Year: 2000, Rating: 8.5},
		{ID: 3, Title: "Winnie the pooh", Year: 1888, Rating: 7},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testMovies())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected header and 3 rows, got %d lines", len(lines))
		}
		if lines[0] != "ID,Title,Year,Rating" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != "1,The Matrix,2019,8.5" {
			t.Errorf("unexpected first row %q", lines[1])
		}
		if lines[3] != "3,Winnie the pooh,1888,7" {
			t.Errorf("unexpected last row %q", lines[3])
		}
	})

	t.Run("ExportToCSV quotes titles with commas", func(t *testing.T) {
		data, err := ExportToCSV([]models.Movie{{ID: 9, Title: "Me, Myself", Year: 2000, Rating: 6}})
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if !strings.Contains(string(data), `"Me, Myself"`) {
			t.Errorf("expected quoted title, got %s", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown("Catalog", testMovies())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Catalog",
			"**Movies**: 3",
			"| ID | Title | Year | Rating |",
			"| 1 | The Matrix | 2019 | 8.5 |",
			"| 2 | Avatar | 2000 | 8.5 |",
			"| 3 | Winnie the pooh | 1888 | 7 |",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToMarkdown empty", func(t *testing.T) {
		data, err := ExportToMarkdown("Catalog", nil)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if strings.Contains(string(data), "| ID |") {
			t.Error("expected no table for an empty catalog")
		}
	})

	t.Run("ExportToMarkdown escapes pipes", func(t *testing.T) {
		data, _ := ExportToMarkdown("Catalog", []models.Movie{{ID: 1, Title: "A|B", Year: 2000, Rating: 1}})
		if !strings.Contains(string(data), `A\|B`) {
			t.Errorf("expected escaped pipe, got %s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testMovies())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Movies: 3") {
			t.Errorf("Text missing count, got: %s", output)
		}
		if !strings.Contains(output, "1. The Matrix (2019) - 8.5") {
			t.Errorf("Text missing first movie, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(nil)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("expected empty array, got %s", data)
		}
	})

	t.Run("Table", func(t *testing.T) {
		output := Table(testMovies())
		for _, want := range []string{"Title", "The Matrix", "Winnie the pooh", "1888"} {
			if !strings.Contains(output, want) {
				t.Errorf("table missing %q, got:\n%s", want, output)
			}
		}
	})
}

func TestParseFormat(t *testing.T) {
	tt := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "CSV", want: FormatCSV},
		{in: "md", want: FormatMarkdown},
		{in: "markdown", want: FormatMarkdown},
		{in: "text", want: FormatText},
		{in: "", want: FormatTable},
		{in: "xml", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParsers(t *testing.T) {
	t.Run("CSV round trip keeps every movie", func(t *testing.T) {
		data, err := ExportToCSV(testMovies())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		movies, err := ParseCSV(strings.NewReader(string(data)))
		if err != nil {
			t.Fatalf("ParseCSV failed: %v", err)
		}
		if len(movies) != 3 || movies[2] != testMovies()[2] {
			t.Errorf("unexpected movies %+v", movies)
		}
	})

	t.Run("CSV without id column", func(t *testing.T) {
		movies, err := ParseCSV(strings.NewReader("title,year,rating\nHeat,1995,8.3\n"))
		if err != nil {
			t.Fatalf("ParseCSV failed: %v", err)
		}
		if len(movies) != 1 || movies[0].Title != "Heat" || movies[0].ID != 0 {
			t.Errorf("unexpected movies %+v", movies)
		}
	})

	t.Run("CSV errors", func(t *testing.T) {
		tt := []struct {
			name  string
			input string
		}{
			{name: "empty", input: ""},
			{name: "missing column", input: "title,year\nHeat,1995\n"},
			{name: "bad year", input: "title,year,rating\nHeat,soon,8\n"},
			{name: "bad rating", input: "title,year,rating\nHeat,1995,high\n"},
			{name: "ragged rows", input: "title,year,rating\nHeat,1995\n"},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := ParseCSV(strings.NewReader(tc.input)); !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
			})
		}
	})

	t.Run("JSON", func(t *testing.T) {
		data, _ := ExportToJSON(testMovies())
		movies, err := ParseJSON(strings.NewReader(string(data)))
		if err != nil {
			t.Fatalf("ParseJSON failed: %v", err)
		}
		if len(movies) != 3 {
			t.Errorf("expected 3 movies, got %d", len(movies))
		}

		if _, err := ParseJSON(strings.NewReader(`{"title":`)); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()

	for _, f := range []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatText, FormatTable} {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(dir, "movies."+f.Ext())

			written, err := WriteExport(testMovies(), f, path)
			if err != nil {
				t.Fatalf("WriteExport failed: %v", err)
			}
			if written != path {
				t.Errorf("expected %s, got %s", path, written)
			}

			th.AssertFileExists(t, path)
			content := th.MustReadFile(t, path)
			if !strings.Contains(content, "Winnie the pooh") {
				t.Errorf("%s export missing a movie:\n%s", f, content)
			}
		})
	}

	t.Run("unwritable path", func(t *testing.T) {
		if _, err := WriteExport(testMovies(), FormatCSV, filepath.Join(dir, "missing", "out.csv")); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
