package model

import "time"

type PendingShare struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	ResourceType string `gorm:"column:resource_type;size:10;not null" json:"resource_type"`

	ResourceID uint64 `gorm:"column:resource_id;not null" json:"resource_id"`

	// Email of the not-yet-registered recipient.
	Email string `gorm:"column:email;size:255;not null;index" json:"email"`

	Role string `gorm:"column:role;size:10;not null" json:"role"`

	InvitedBy uint64 `gorm:"column:invited_by;not null" json:"invited_by"`

	Token string `gorm:"column:token;size:64;uniqueIndex;not null" json:"-"`

	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (PendingShare) TableName() string {
	return "pending_shares"
}
