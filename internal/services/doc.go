// Package services implements a typed HTTP client for the movie catalog API.
//
// # Client
//
// [APIService] wraps the REST endpoints (login, listing, lookups, writes) and decodes their JSON bodies
// into [models.Movie] values. It satisfies [Service], which the CLI's remote commands depend on.
//
// Bearer tokens are set once with [APIService.SetToken] (or returned from [APIService.Login], which stores
// the token it receives) and sent on every request.
//
// # Error Handling
//
// Non-2xx responses become an [*APIError] carrying the status, the server's message and any validation
// details. APIError unwraps to a sentinel from the shared package so callers can use [errors.Is]:
//   - [shared.ErrMovieNotFound] : 404 for a movie id or a year with no movies
//   - [shared.ErrInvalidCredentials] : 401 from POST /login
//   - [shared.ErrNotAuthenticated] : 401 or 403 from a gated route
//   - [shared.ErrInvalidInput] : 422 validation failure
//   - [shared.ErrAPIRequest] : anything else
package services
