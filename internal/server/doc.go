// Package server provides HTTP routing, middleware, and the movie catalog handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// Router-wide middleware registered with Use wraps the whole mux, so unmatched paths and 405 responses are
// logged too. Route-level middleware (for example [RequireAuth]) wraps a single pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /movies/{id}").
//
// # Handler Interface
//
// Handlers implement [Handler], returning the [Route] values they serve so a group of endpoints keeps its
// route table next to the code handling it.
//
//   - [HomeHandler] : GET /
//   - [AuthHandler] : POST /login
//   - [MovieHandler] : the /movies resource
//
// # Responses
//
// Bodies are JSON. Status messages use {"message": "..."}; boundary validation failures answer 422 with
// {"detail": [{"loc": [...], "msg": "...", "type": "..."}]}.
package server
