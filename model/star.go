package model

import "time"

type Star struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	UserID uint64 `gorm:"column:user_id;not null;uniqueIndex:uk_user_resource,priority:1" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	ResourceType string `gorm:"column:resource_type;size:10;not null;uniqueIndex:uk_user_resource,priority:2" json:"resource_type"`

	ResourceID uint64 `gorm:"column:resource_id;not null;uniqueIndex:uk_user_resource,priority:3" json:"resource_id"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Star) TableName() string {
	return "stars"
}
