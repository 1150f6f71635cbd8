// Package repositories implements SQLite persistence for the movie catalog.
//
// Storage goes through a gorm session layered over the shared [database/sql] handle, so the schema
// bootstrap in package shared and the repository see the same connection pool.
//
// Key Implementations:
//   - [MovieRepository] : [models.MovieStore] over the movies table
//   - [NewGormDB] : opens the gorm session with SQL statements routed to charmbracelet/log
//
// Each operation binds the caller's context. Writes that read first (update, delete) run in a single
// transaction so a missing row never results in a write.
package repositories
