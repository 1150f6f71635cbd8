// Package models defines the movie catalog's entities, request payloads and the persistence interface.
//
// The package contains three kinds of types:
//
// 1. Persistent entities
//   - [Movie] : one catalog row, mapped onto the movies table
//
// 2. Request payloads validated at the HTTP and CLI boundary
//   - [MoviePayload] : create/update body; id is accepted but never trusted
//   - [Credentials] : login body checked against the single administrator
//
// 3. Persistence contracts
//   - [Repository] : generic CRUD over a model keyed by an integer id
//   - [MovieStore] : the repository the API and CLI depend on
//
// Boundary constraints (title length, id and year ranges) are declared here with go-playground/validator tags
// and checked by callers through [NewValidator]. Stores trust what they are given.
package models
