// Package tasks runs catalog-wide operations with real-time progress reporting.
//
// # Core Operations
//
// [CatalogEngine] works against a local [models.MovieStore]:
//
//  1. [CatalogEngine.Seed] : Load the default catalog into an empty table
//     - Skips entirely when any movie is already stored
//
//  2. [CatalogEngine.Import] : Add movies read from a JSON or CSV file
//     - Each movie is checked against the same title rule as the API
//     - Invalid rows are reported and skipped, valid ones get fresh ids
//
//  3. [CatalogEngine.Export] : Read the catalog (optionally one year) for the formatter
//
// [BulkPush] replays a list of movies against a running API through [services.Service]
// with a worker pool and a client-side rate limit.
//
// # Progress Reporting
//
// All operations accept an optional channel of [ProgressUpdate].
// Updates use select with default to prevent blocking.
package tasks
