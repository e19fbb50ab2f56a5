package model

import "time"

const (
	ResourceFile   = "file"
	ResourceFolder = "folder"

	RoleViewer = "VIEWER"
	RoleEditor = "EDITOR"
)

type Share struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	ResourceType string `gorm:"column:resource_type;size:10;not null;uniqueIndex:uk_resource_user,priority:1" json:"resource_type"`

	ResourceID uint64 `gorm:"column:resource_id;not null;uniqueIndex:uk_resource_user,priority:2" json:"resource_id"`

	SharedWith uint64 `gorm:"column:shared_with;not null;index;uniqueIndex:uk_resource_user,priority:3" json:"shared_with"`
	Recipient  User   `gorm:"foreignKey:SharedWith;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	Role string `gorm:"column:role;size:10;not null" json:"role"`

	SharedBy uint64 `gorm:"column:shared_by;not null" json:"shared_by"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Share) TableName() string {
	return "shares"
}

// RoleRank orders roles so that EDITOR implies VIEWER.
func RoleRank(role string) int {
	switch role {
	case RoleEditor:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}
