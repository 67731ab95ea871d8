package service

import (
	"context"
	"testing"
	"time"

	"github.com/subtrackhq/subtrack/config"
	"github.com/subtrackhq/subtrack/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:       "test-jwt-secret",
		TokenExpiration: time.Hour,
		GoogleClientID:  "client-id",
		GoogleRedirect:  "https://subtrack.app/auth/google/callback",
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name        string
		req         *RegisterRequest
		expectedErr error
	}{
		{
			name: "invalid email",
			req: &RegisterRequest{
				Email:           "not-an-email",
				Name:            "Alex",
				Password:        "secret123",
				PasswordConfirm: "secret123",
			},
			expectedErr: entity.ErrInvalidEmail,
		},
		{
			name: "email without domain dot",
			req: &RegisterRequest{
				Email:           "alex@localhost",
				Name:            "Alex",
				Password:        "secret123",
				PasswordConfirm: "secret123",
			},
			expectedErr: entity.ErrInvalidEmail,
		},
		{
			name: "password too short",
			req: &RegisterRequest{
				Email:           "alex@example.com",
				Name:            "Alex",
				Password:        "abc",
				PasswordConfirm: "abc",
			},
			expectedErr: entity.ErrInvalidPassword,
		},
		{
			name: "password confirmation mismatch",
			req: &RegisterRequest{
				Email:           "alex@example.com",
				Name:            "Alex",
				Password:        "secret123",
				PasswordConfirm: "secret124",
			},
			expectedErr: entity.ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := newFakeUserRepo()
			svc := NewAuthService(userRepo, nil, testAuthConfig())

			resp, err := svc.Register(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, resp)
			// Validation failures never reach storage.
			assert.Empty(t, userRepo.users)
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, nil, testAuthConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:           "alex@example.com",
		Name:            "Alex",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.NotEqual(t, "secret123", resp.User.PasswordHash)

	// The issued token resolves back to the stored user.
	userID, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alex@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, nil, testAuthConfig())

	req := &RegisterRequest{
		Email:           "alex@example.com",
		Name:            "Alex",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrUserAlreadyExists)
}

func TestLoginWrongCredentials(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, nil, testAuthConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:           "alex@example.com",
		Name:            "Alex",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "alex@example.com", password: "wrong-password"},
		{name: "unknown email", email: "nobody@example.com", password: "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &LoginRequest{Email: tt.email, Password: tt.password})
			assert.ErrorIs(t, err, entity.ErrWrongCredentials)
		})
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), nil, testAuthConfig())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "not a jwt", token: "garbage"},
		{name: "tampered token", token: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiI0MiJ9.invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseToken(tt.token)
			assert.ErrorIs(t, err, entity.ErrUnauthorized)
		})
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenExpiration = -time.Minute
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, nil, cfg)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:           "alex@example.com",
		Name:            "Alex",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.ParseToken(resp.Token)
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestRequestPasswordReset(t *testing.T) {
	userRepo := newFakeUserRepo()
	publisher := &recordingPublisher{}
	svc := NewAuthService(userRepo, publisher, testAuthConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:           "alex@example.com",
		Name:            "Alex",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	})
	require.NoError(t, err)

	err = svc.RequestPasswordReset(context.Background(), "alex@example.com")
	require.NoError(t, err)
	require.Len(t, publisher.tasks, 1)
	assert.Equal(t, "email", publisher.tasks[0].Type)

	err = svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
	assert.Len(t, publisher.tasks, 1)
}

func TestGoogleAuthURL(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), nil, testAuthConfig())

	authURL := svc.GoogleAuthURL("state-token")

	assert.Contains(t, authURL, "https://accounts.google.com/o/oauth2/v2/auth?")
	assert.Contains(t, authURL, "client_id=client-id")
	assert.Contains(t, authURL, "state=state-token")
	assert.Contains(t, authURL, "response_type=code")
}
