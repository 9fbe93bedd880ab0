package messaging

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/schema"
)

// NotificationType identifies the kind of check-in notification
type NotificationType string

const (
	NotificationAttendanceRecorded NotificationType = "attendance.recorded"
)

// SubjectPrefix is the subject namespace of all check-in notifications
const SubjectPrefix = "checkin"

// Notification is the envelope published to the broker
type Notification struct {
	// ID is a ULID, sortable by creation time
	ID        string           `json:"event_id"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Data      AttendanceData   `json:"data"`
}

// AttendanceData describes a recorded attendance entry
type AttendanceData struct {
	EventID     string                  `json:"event_id"`
	EventTitle  string                  `json:"event_title,omitempty"`
	EntryID     string                  `json:"entry_id"`
	IdentityKey domain.IdentityKey      `json:"identity_key"`
	MemberID    *string                 `json:"member_id,omitempty"`
	DisplayName string                  `json:"display_name"`
	Status      domain.AttendanceStatus `json:"status"`
	Origin      domain.Origin           `json:"origin"`
	RecordedAt  time.Time               `json:"recorded_at"`
}

// NewAttendanceRecorded builds the notification for a created entry
func NewAttendanceRecorded(entry *schema.AttendanceEntry, eventTitle string, now time.Time) *Notification {
	return &Notification{
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Type:      NotificationAttendanceRecorded,
		Timestamp: now.UTC(),
		Data: AttendanceData{
			EventID:     entry.EventID,
			EventTitle:  eventTitle,
			EntryID:     entry.ID,
			IdentityKey: entry.IdentityKey,
			MemberID:    entry.MemberID,
			DisplayName: entry.DisplayName,
			Status:      entry.Status,
			Origin:      entry.Origin,
			RecordedAt:  entry.RecordedAt,
		},
	}
}

// Subject returns the broker subject, e.g. checkin.attendance.recorded.<event_id>
func (n *Notification) Subject() string {
	return SubjectPrefix + "." + string(n.Type) + "." + n.Data.EventID
}
