package schema

import (
	"time"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
)

// AttendanceEntry represents the attendance_entries table. Rows are append-only.
//
// ux_attendance_counted_identity is a partial unique index: an identity can hold at most one
// present/late row per event, while informational statuses may repeat.
type AttendanceEntry struct {
	ID                string                  `gorm:"column:id;primaryKey;type:varchar(36)"`
	EventID           string                  `gorm:"column:event_id;not null;type:varchar(36);index;uniqueIndex:ux_attendance_counted_identity,priority:1,where:status IN ('present'\\,'late')"`
	IdentityKey       domain.IdentityKey      `gorm:"column:identity_key;not null;type:text;uniqueIndex:ux_attendance_counted_identity,priority:2,where:status IN ('present'\\,'late')"`
	MemberID          *string                 `gorm:"column:member_id;type:varchar(36);index"`
	DisplayName       string                  `gorm:"column:display_name;not null;type:text"`
	ExternalReference *string                 `gorm:"column:external_reference;type:text"`
	Status            domain.AttendanceStatus `gorm:"column:status;not null;type:varchar(16)"`
	Origin            domain.Origin           `gorm:"column:origin;not null;type:varchar(16)"`
	RecordedAt        time.Time               `gorm:"column:recorded_at;not null"`
	RecordedBy        string                  `gorm:"column:recorded_by;type:text"`
	Notes             string                  `gorm:"column:notes;type:text"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime"`

	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the AttendanceEntry model
func (AttendanceEntry) TableName() string {
	return "attendance_entries"
}
