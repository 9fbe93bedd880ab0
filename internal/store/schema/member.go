package schema

import "time"

// Member is the read-only projection of a registered organization member used to resolve identities
type Member struct {
	ID string `gorm:"column:id;primaryKey;type:varchar(36)"`
	// Subject is the authentication subject linked to this member, if any
	Subject *string `gorm:"column:subject;type:text;uniqueIndex"`
	Email   *string `gorm:"column:email;type:text;index"`
	// FullName is the member's display name
	FullName string `gorm:"column:full_name;not null;type:text"`
	// NormalizedName is FullName after identity.NormalizeName, used for manual lookups
	NormalizedName string `gorm:"column:normalized_name;not null;type:text;index"`
	// MemberNumber is the organization's roll/member number
	MemberNumber *string   `gorm:"column:member_number;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for the Member model
func (Member) TableName() string {
	return "members"
}
