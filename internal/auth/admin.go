package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// Admin is the single principal allowed to log in and to pass the [Gate].
type Admin struct {
	email string
	hash  []byte
}

// NewAdmin builds the administrator from config. A non-empty passwordHash wins over password,
// otherwise password is hashed once here with cost (bcrypt.DefaultCost when zero).
func NewAdmin(email, password, passwordHash string, cost int) (*Admin, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: admin email is empty", shared.ErrInvalidConfig)
	}

	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("%w: admin password hash: %v", shared.ErrInvalidConfig, err)
		}
		return &Admin{email: email, hash: []byte(passwordHash)}, nil
	}

	if password == "" {
		return nil, fmt.Errorf("%w: admin password is empty", shared.ErrInvalidConfig)
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &Admin{email: email, hash: hash}, nil
}

// Email returns the administrator address.
func (a *Admin) Email() string {
	return a.email
}

// Check compares login credentials with the administrator's.
func (a *Admin) Check(creds models.Credentials) error {
	emailOK := a.Is(creds.Email)
	passwordOK := bcrypt.CompareHashAndPassword(a.hash, []byte(creds.Password)) == nil
	if !emailOK || !passwordOK {
		return shared.ErrInvalidCredentials
	}
	return nil
}

// Is reports whether email is the administrator address.
func (a *Admin) Is(email string) bool {
	return subtle.ConstantTimeCompare([]byte(email), []byte(a.email)) == 1
}
