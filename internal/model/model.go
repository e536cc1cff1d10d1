package model

import (
	"fmt"
	"strings"
	"time"
)

// NotificationType classifies the situation a notification announces.
type NotificationType string

const (
	TypeFiveMinutesBefore NotificationType = "FIVE_MINUTES_BEFORE"
	TypeEventStarted      NotificationType = "EVENT_STARTED"
	TypeEventExpired      NotificationType = "EVENT_EXPIRED"
)

// localTimeLayout matches the backend's zone-less LocalDateTime encoding.
const localTimeLayout = "2006-01-02T15:04:05"

// LocalTime is a time.Time that marshals as "2006-01-02T15:04:05" without a
// zone offset, interpreted in the local timezone. The backend speaks this
// format on every event and notification field.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{t}
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(localTimeLayout) + `"`), nil
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.ParseInLocation(localTimeLayout, s, time.Local)
	if err != nil {
		// Minute precision, as submitted by clients before normalization.
		parsed, err = time.ParseInLocation("2006-01-02T15:04", s, time.Local)
	}
	if err != nil {
		return fmt.Errorf("invalid event time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"` // Plain text on the wire, see backend contract
}

type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	EventTime   LocalTime `json:"eventTime"`
	UserID      int64     `json:"userId"`
}

type Notification struct {
	EventID   int64            `json:"eventId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	EventTime LocalTime        `json:"eventTime"`
}

// SessionRecord is the durable session schema persisted between runs.
type SessionRecord struct {
	User    *User     `json:"user"`
	SavedAt time.Time `json:"saved_at"`
}
