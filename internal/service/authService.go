package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/subtrackhq/subtrack/config"
	repository "github.com/subtrackhq/subtrack/internal/database/postgres"
	"github.com/subtrackhq/subtrack/internal/entity"
	"github.com/subtrackhq/subtrack/pkg/queue"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type authService struct {
	userRepo  repository.UserRepository
	publisher TaskPublisher
	cfg       *config.AuthConfig
}

func NewAuthService(userRepo repository.UserRepository, publisher TaskPublisher, cfg *config.AuthConfig) AuthService {
	return &authService{
		userRepo:  userRepo,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	// Local validation happens before any storage call.
	if !emailPattern.MatchString(req.Email) {
		return nil, entity.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return nil, entity.ErrInvalidPassword
	}
	if req.Password != req.PasswordConfirm {
		return nil, entity.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	logrus.WithField("user_id", user.ID).Info("User registered")
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, entity.ErrWrongCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, entity.ErrWrongCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, Token: token}, nil
}

func (s *authService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.userRepo.EmailExists(ctx, email)
}

// RequestPasswordReset refuses addresses without an account. The existence
// disclosure matches the reset form's probe and is a deliberate product
// trade-off.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return entity.ErrUserNotFound
	}

	resetToken := uuid.New().String()
	payload, err := json.Marshal(queue.EmailTask{
		To:      user.Email,
		Subject: "Reset your SubTrack password",
		Body:    "Use this link to reset your password: https://subtrack.app/reset?token=" + resetToken,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reset email: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, &Task{
			Type: queue.TaskTypeEmail,
			Data: payload,
		}); err != nil {
			return fmt.Errorf("failed to enqueue reset email: %w", err)
		}
	}

	logrus.WithField("user_id", user.ID).Info("Password reset requested")
	return nil
}

func (s *authService) GoogleAuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", s.cfg.GoogleClientID)
	params.Set("redirect_uri", s.cfg.GoogleRedirect)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("state", state)
	return "https://accounts.google.com/o/oauth2/v2/auth?" + params.Encode()
}

func (s *authService) ParseToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return 0, entity.ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, entity.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, entity.ErrUnauthorized
	}
	return userID, nil
}

func (s *authService) issueToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenExpiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
