package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrMissingCredential = errors.New("missing bearer credential")
	ErrForbidden         = errors.New("forbidden")
)

// Registered claims the service manages itself. Callers can't override them through Issue.
var reservedClaims = map[string]struct{}{"exp": {}, "iat": {}, "nbf": {}, "jti": {}, "iss": {}}

// TokenService signs and verifies HS256 bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// TokenOpts configures a [TokenService].
type TokenOpts struct {
	Secret string
	TTL    time.Duration
	Issuer string
	Now    func() time.Time // defaults to time.Now
}

// NewTokenService creates a [TokenService]. An empty secret is rejected.
func NewTokenService(opts TokenOpts) (*TokenService, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("token secret is empty")
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &TokenService{
		secret: []byte(opts.Secret),
		ttl:    opts.TTL,
		issuer: opts.Issuer,
		now:    opts.Now,
	}, nil
}

// Issue signs claims into a token that expires after the configured TTL.
func (s *TokenService) Issue(claims map[string]string) (string, error) {
	now := s.now()

	mc := jwt.MapClaims{}
	for k, v := range claims {
		if _, reserved := reservedClaims[k]; reserved {
			continue
		}
		mc[k] = v
	}
	mc["iat"] = jwt.NewNumericDate(now)
	mc["exp"] = jwt.NewNumericDate(now.Add(s.ttl))
	mc["jti"] = uuid.New().String()
	if s.issuer != "" {
		mc["iss"] = s.issuer
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Validate verifies the token and returns its string-valued claims.
func (s *TokenService) Validate(token string) (map[string]string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims := make(map[string]string, len(mc))
	for k, v := range mc {
		if str, ok := v.(string); ok {
			claims[k] = str
		}
	}
	return claims, nil
}

// TTL reports how long issued tokens stay valid.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
