package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Validation runs before any store access, so a service with no
// pool is enough to exercise the rejection paths.
func newValidationOnlyAuthService() *authServiceImpl {
	return &authServiceImpl{
		logger:           zerolog.Nop(),
		jwtIssuer:        "taskpad-test",
		jwtSigningKey:    []byte("test-signing-key"),
		registerTokenTTL: time.Hour,
		loginTokenTTL:    24 * time.Hour,
	}
}

func TestRegister_Validation(t *testing.T) {
	s := newValidationOnlyAuthService()

	cases := []struct {
		name    string
		params  RegisterParams
		wantErr error
	}{
		{"missing name", RegisterParams{Email: "a@b.com", Password: "1234"}, ErrMissingFields},
		{"missing email", RegisterParams{Name: "a", Password: "1234"}, ErrMissingFields},
		{"missing password", RegisterParams{Name: "a", Email: "a@b.com"}, ErrMissingFields},
		{"short password", RegisterParams{Name: "a", Email: "a@b.com", Password: "123"}, ErrPasswordTooShort},
		{"no at sign", RegisterParams{Name: "a", Email: "ab.com", Password: "1234"}, ErrInvalidEmail},
		{"no domain", RegisterParams{Name: "a", Email: "a@", Password: "1234"}, ErrInvalidEmail},
		{"no tld", RegisterParams{Name: "a", Email: "a@b", Password: "1234"}, ErrInvalidEmail},
		{"single letter tld", RegisterParams{Name: "a", Email: "a@b.c", Password: "1234"}, ErrInvalidEmail},
		{"space in local part", RegisterParams{Name: "a", Email: "a b@c.com", Password: "1234"}, ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tc.params)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestEmailRegexp_AcceptsValidAddresses(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co",
		"user+tag@sub.example.org",
		"user_name%x@example-domain.com",
	}
	for _, email := range valid {
		if !emailRegexp.MatchString(email) {
			t.Fatalf("expected %q to be accepted", email)
		}
	}
}

func TestLogin_MissingFields(t *testing.T) {
	s := newValidationOnlyAuthService()

	_, err := s.Login(context.Background(), LoginParams{Password: "1234"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for missing email, got %v", err)
	}

	_, err = s.Login(context.Background(), LoginParams{Email: "a@b.com"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for missing password, got %v", err)
	}
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	s := newValidationOnlyAuthService()

	const userID = "0198a7f2-0000-7000-8000-000000000001"
	before := time.Now()
	token, expiresAt, err := s.generateToken(userID, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				t.Fatalf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.jwtSigningKey, nil
		},
		jwt.WithIssuer("taskpad-test"),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if claims.Subject != userID {
		t.Fatalf("expected subject %q, got %q", userID, claims.Subject)
	}

	wantExpiry := before.Add(time.Hour)
	if expiresAt.Before(wantExpiry) || expiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Fatalf("expiry %v not about an hour after %v", expiresAt, before)
	}
	if !claims.ExpiresAt.Time.Equal(expiresAt.Truncate(time.Second)) {
		t.Fatalf("claim expiry %v does not match returned %v",
			claims.ExpiresAt.Time, expiresAt)
	}
}

func TestGenerateToken_RejectedWithWrongKey(t *testing.T) {
	s := newValidationOnlyAuthService()

	token, _, err := s.generateToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			return []byte("some-other-key"), nil
		})
	if err == nil {
		t.Fatalf("expected verification failure with the wrong key")
	}
}
