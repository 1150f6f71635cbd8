package tasks

import (
	"fmt"

	"github.com/negagl/my-movie-api/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SeedCatalog Phase = iota
	ImportMovies
	ExportMovies
	PushMovies
)

func (p Phase) String() string {
	switch p {
	case SeedCatalog:
		return "seed_catalog"
	case ImportMovies:
		return "import_movies"
	case ExportMovies:
		return "export_movies"
	case PushMovies:
		return "push_movies"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func seedSkippedUpdate(count int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SeedCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Catalog already holds %d movies, nothing to seed", count),
	}
}

func movieStoredUpdate(phase Phase, step, total int, m *models.Movie) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d) as #%d", step, total, m.Title, m.Year, m.ID),
		Data:    m,
	}
}

func movieFailedUpdate(phase Phase, step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}

func exportedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportMovies,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Read %d movies from the catalog", count),
	}
}

func pushedUpdate(step, total int, title, msg string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PushMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s: %s", step, total, title, msg),
	}
}
