package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/subtrackhq/subtrack/internal/entity"
)

type preferencesRepository struct {
	db *sql.DB
}

func NewPreferencesRepository(db *sql.DB) PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) Get(ctx context.Context, userID int64) (*entity.NotificationPreferences, error) {
	query := `
		SELECT user_id, email_enabled, reminder_30_days, reminder_7_days, reminder_1_day, email_time::text, updated_at
		FROM notification_preferences
		WHERE user_id = $1
	`

	var prefs entity.NotificationPreferences
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.EmailEnabled,
		&prefs.Reminder30Days,
		&prefs.Reminder7Days,
		&prefs.Reminder1Day,
		&prefs.EmailTime,
		&prefs.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	prefs.EmailTime = presentEmailTime(prefs.EmailTime)
	return &prefs, nil
}

func (r *preferencesRepository) Upsert(ctx context.Context, prefs *entity.NotificationPreferences) error {
	query := `
		INSERT INTO notification_preferences (user_id, email_enabled, reminder_30_days, reminder_7_days, reminder_1_day, email_time, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			email_enabled = EXCLUDED.email_enabled,
			reminder_30_days = EXCLUDED.reminder_30_days,
			reminder_7_days = EXCLUDED.reminder_7_days,
			reminder_1_day = EXCLUDED.reminder_1_day,
			email_time = EXCLUDED.email_time,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		prefs.UserID,
		prefs.EmailEnabled,
		prefs.Reminder30Days,
		prefs.Reminder7Days,
		prefs.Reminder1Day,
		StoredEmailTime(prefs.EmailTime),
		prefs.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return nil
}

// StoredEmailTime widens "HH:MM" to the "HH:MM:SS" form the column holds.
// Values already carrying seconds pass through unchanged.
func StoredEmailTime(emailTime string) string {
	if len(emailTime) == 5 {
		return emailTime + ":00"
	}
	return emailTime
}

// presentEmailTime truncates the stored "HH:MM:SS" back to the "HH:MM" the
// API exposes, preserving the round trip with the persisted schema.
func presentEmailTime(emailTime string) string {
	if len(emailTime) > 5 {
		return emailTime[:5]
	}
	return emailTime
}
