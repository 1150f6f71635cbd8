package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBearerToken(t *testing.T) {
	tt := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lower case scheme", header: "bearer abc", want: "abc"},
		{name: "extra spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "missing", header: "", wantErr: true},
		{name: "scheme only", header: "Bearer", wantErr: true},
		{name: "blank token", header: "Bearer    ", wantErr: true},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/movies", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			got, err := BearerToken(r)
			if tc.wantErr {
				if !errors.Is(err, ErrMissingCredential) {
					t.Errorf("expected ErrMissingCredential, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("BearerToken() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGate(t *testing.T) {
	tokens := newTestTokens(t, nil)
	gate := NewGate(tokens, newTestAdmin(t))

	adminToken, err := tokens.Issue(map[string]string{"email": "admin@mail.com"})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	userToken, err := tokens.Issue(map[string]string{"email": "someone@mail.com"})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	noEmailToken, err := tokens.Issue(map[string]string{"role": "admin"})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	tt := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "admin token passes", header: "Bearer " + adminToken},
		{name: "other email is forbidden", header: "Bearer " + userToken, wantErr: ErrForbidden},
		{name: "token without email is forbidden", header: "Bearer " + noEmailToken, wantErr: ErrForbidden},
		{name: "no token", wantErr: ErrMissingCredential},
		{name: "invalid token", header: "Bearer nope", wantErr: ErrInvalidToken},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/movies", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			err := gate.Guard()(r)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("expected request to be authorized, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Authorize() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
