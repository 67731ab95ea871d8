package entity

import "time"

// NotificationPreferences is one row per user. EmailTime is presented as
// "HH:MM" but persisted as "HH:MM:SS"; the repository owns that asymmetry.
type NotificationPreferences struct {
	UserID         int64     `json:"user_id" db:"user_id"`
	EmailEnabled   bool      `json:"email_enabled" db:"email_enabled"`
	Reminder30Days bool      `json:"reminder_30_days" db:"reminder_30_days"`
	Reminder7Days  bool      `json:"reminder_7_days" db:"reminder_7_days"`
	Reminder1Day   bool      `json:"reminder_1_day" db:"reminder_1_day"`
	EmailTime      string    `json:"email_time" db:"email_time"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultPreferences is what a user gets on first load: every reminder on,
// morning digest.
func DefaultPreferences(userID int64) *NotificationPreferences {
	return &NotificationPreferences{
		UserID:         userID,
		EmailEnabled:   true,
		Reminder30Days: true,
		Reminder7Days:  true,
		Reminder1Day:   true,
		EmailTime:      "09:00",
		UpdatedAt:      time.Now(),
	}
}

// WantsReminder reports whether the user opted into a reminder at the given
// day threshold.
func (p *NotificationPreferences) WantsReminder(days int) bool {
	switch days {
	case 30:
		return p.Reminder30Days
	case 7:
		return p.Reminder7Days
	case 1:
		return p.Reminder1Day
	}
	return false
}
