// Package auth issues and checks bearer tokens for the movie API.
//
// # Token Service
//
// [TokenService] signs HS256 JWTs carrying string claims plus exp, iat and jti. Validation fails closed:
// a bad signature, an unexpected algorithm, a missing or elapsed exp, or a malformed token all return
// [ErrInvalidToken]. There is no refresh and no revocation list.
//
// # Administrator
//
// The API has exactly one principal. [Admin] holds its email and a bcrypt hash of its password and answers
// login attempts with [shared.ErrInvalidCredentials] on any mismatch.
//
// # Gate
//
// [Gate] is a request guard: it extracts the bearer token, validates it, and authorizes only when the token's
// email claim equals the administrator address. It never injects claims into the request; routes that need
// it wrap their handler with server.RequireAuth.
package auth
