package model

import "time"

type PublicLink struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Token string `gorm:"column:token;size:64;uniqueIndex;not null" json:"token"`

	ResourceType string `gorm:"column:resource_type;size:10;not null" json:"resource_type"`

	ResourceID uint64 `gorm:"column:resource_id;not null" json:"resource_id"`

	Role string `gorm:"column:role;size:10;not null" json:"role"`

	// PasswordHash is a bcrypt hash; empty means the link is not password gated.
	PasswordHash string `gorm:"column:password_hash;size:255;not null;default:''" json:"-"`

	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`

	CreatedBy uint64 `gorm:"column:created_by;not null;index" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (PublicLink) TableName() string {
	return "public_links"
}
