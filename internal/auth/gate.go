package auth

import (
	"fmt"
	"net/http"
	"strings"
)

// Guard decides whether a request may proceed. A nil error authorizes it.
type Guard func(r *http.Request) error

// TokenValidator is the subset of [TokenService] the [Gate] needs.
type TokenValidator interface {
	Validate(token string) (map[string]string, error)
}

// Gate authorizes requests carrying a valid token issued to the administrator.
type Gate struct {
	tokens TokenValidator
	admin  *Admin
}

// NewGate creates a [Gate].
func NewGate(tokens TokenValidator, admin *Admin) *Gate {
	return &Gate{tokens: tokens, admin: admin}
}

// Authorize implements [Guard].
//
// Returns [ErrMissingCredential] or [ErrInvalidToken] when the caller is not authenticated and
// [ErrForbidden] when the token belongs to someone other than the administrator.
func (g *Gate) Authorize(r *http.Request) error {
	token, err := BearerToken(r)
	if err != nil {
		return err
	}

	claims, err := g.tokens.Validate(token)
	if err != nil {
		return err
	}

	if !g.admin.Is(claims["email"]) {
		return fmt.Errorf("%w: token subject is not the administrator", ErrForbidden)
	}
	return nil
}

// Guard returns Authorize as a [Guard].
func (g *Gate) Guard() Guard {
	return g.Authorize
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// The scheme is case-insensitive.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", ErrMissingCredential
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", fmt.Errorf("%w: unsupported authorization scheme", ErrMissingCredential)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingCredential
	}
	return token, nil
}
