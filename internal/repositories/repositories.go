package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SlowQueryThreshold is the elapsed time after which a statement is logged as a warning.
const SlowQueryThreshold = 200 * time.Millisecond

// NewGormDB opens a gorm session over an existing SQLite handle.
//
// When echo is set every statement is logged at info level, otherwise only failures and slow queries are.
// A nil logger silences gorm entirely.
func NewGormDB(db *sql.DB, l *log.Logger, echo bool) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.New(sqlite.Config{Conn: db}), &gorm.Config{
		Logger:                 NewGormLogger(l, echo),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}
	return gdb, nil
}

// GormLogger adapts a [log.Logger] to gorm's [logger.Interface].
type GormLogger struct {
	l     *log.Logger
	level logger.LogLevel
	slow  time.Duration
}

// NewGormLogger creates a [GormLogger]. See [NewGormDB] for the meaning of echo.
func NewGormLogger(l *log.Logger, echo bool) *GormLogger {
	level := logger.Warn
	switch {
	case l == nil:
		level = logger.Silent
	case echo:
		level = logger.Info
	}
	return &GormLogger{l: l, level: level, slow: SlowQueryThreshold}
}

func (g *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *GormLogger) Info(_ context.Context, msg string, args ...any) {
	if g.level >= logger.Info {
		g.l.Infof(msg, args...)
	}
}

func (g *GormLogger) Warn(_ context.Context, msg string, args ...any) {
	if g.level >= logger.Warn {
		g.l.Warnf(msg, args...)
	}
}

func (g *GormLogger) Error(_ context.Context, msg string, args ...any) {
	if g.level >= logger.Error {
		g.l.Errorf(msg, args...)
	}
}

// Trace logs one executed statement. Record-not-found is an expected outcome and is never logged as an error.
func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= logger.Error:
		stmt, rows := fc()
		g.l.Error("query failed", "sql", stmt, "rows", rows, "elapsed", elapsed, "error", err)
	case g.slow > 0 && elapsed > g.slow && g.level >= logger.Warn:
		stmt, rows := fc()
		g.l.Warn("slow query", "sql", stmt, "rows", rows, "elapsed", elapsed)
	case g.level >= logger.Info:
		stmt, rows := fc()
		g.l.Info("query", "sql", stmt, "rows", rows, "elapsed", elapsed)
	}
}
