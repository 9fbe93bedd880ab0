package schema

import "time"

// Event represents the events table. Only the columns the check-in flow touches are mapped;
// the rest of the organization's event record is owned elsewhere.
type Event struct {
	// ID is an opaque identifier (UUID string)
	ID string `gorm:"column:id;primaryKey;type:varchar(36)"`
	// Title is the display title shown on check-in results
	Title string `gorm:"column:title;not null;type:text"`
	// Location is free-form venue text
	Location string `gorm:"column:location;type:text"`
	// StartsAt is the scheduled date of the event
	StartsAt *time.Time `gorm:"column:starts_at"`
	// CurrentToken is the single valid redemption credential; nil before the first rotation
	CurrentToken *string `gorm:"column:current_token;type:text"`
	// TokenRotatedAt records when CurrentToken was last written
	TokenRotatedAt *time.Time `gorm:"column:token_rotated_at;index"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for the Event model
func (Event) TableName() string {
	return "events"
}
