package entity

import "errors"

var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrInvalidPassword   = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrWrongCredentials  = errors.New("wrong email or password")

	// Subscription errors
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPlanLimitReached     = errors.New("subscription limit reached for current plan")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidEmailTime     = errors.New("email time must be HH:MM")

	// Webhook errors
	ErrMissingSignature = errors.New("missing paddle-signature header")
	ErrBadSignature     = errors.New("webhook signature verification failed")

	// General errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrForbidden     = errors.New("forbidden operation")
)
