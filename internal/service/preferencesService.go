package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	repository "github.com/subtrackhq/subtrack/internal/database/postgres"
	"github.com/subtrackhq/subtrack/internal/entity"

	"github.com/sirupsen/logrus"
)

var emailTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type preferencesService struct {
	prefsRepo repository.PreferencesRepository
}

func NewPreferencesService(prefsRepo repository.PreferencesRepository) PreferencesService {
	return &preferencesService{prefsRepo: prefsRepo}
}

// Load returns the user's preferences, inserting the default row on first
// access so every user always has one.
func (s *preferencesService) Load(ctx context.Context, userID int64) (*entity.NotificationPreferences, error) {
	prefs, err := s.prefsRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	if prefs != nil {
		return prefs, nil
	}

	defaults := entity.DefaultPreferences(userID)
	if err := s.prefsRepo.Upsert(ctx, defaults); err != nil {
		return nil, fmt.Errorf("failed to create default preferences: %w", err)
	}

	logrus.WithField("user_id", userID).Debug("Created default notification preferences")
	return defaults, nil
}

// Save replaces the whole row; there is no partial-field merge path.
func (s *preferencesService) Save(ctx context.Context, userID int64, req *SavePreferencesRequest) (*entity.NotificationPreferences, error) {
	if !emailTimePattern.MatchString(req.EmailTime) {
		return nil, entity.ErrInvalidEmailTime
	}

	prefs := &entity.NotificationPreferences{
		UserID:         userID,
		EmailEnabled:   req.EmailEnabled,
		Reminder30Days: req.Reminder30Days,
		Reminder7Days:  req.Reminder7Days,
		Reminder1Day:   req.Reminder1Day,
		EmailTime:      req.EmailTime,
		UpdatedAt:      time.Now(),
	}

	if err := s.prefsRepo.Upsert(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return prefs, nil
}
