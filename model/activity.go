package model

import "time"

const (
	ActionUpload   = "upload"
	ActionRename   = "rename"
	ActionDelete   = "delete"
	ActionDownload = "download"
	ActionRestore  = "restore"
	ActionShare    = "share"
	ActionUnshare  = "unshare"
	ActionMove     = "move"
	ActionRollback = "rollback"
)

// Activity is an append-only audit record; rows are never updated or removed
// by normal operations.
type Activity struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	ActorID uint64 `gorm:"column:actor_id;not null;index" json:"actor_id"`
	Actor   User   `gorm:"foreignKey:ActorID;references:ID" json:"-"`

	Action string `gorm:"column:action;size:20;not null" json:"action"`

	ResourceType string `gorm:"column:resource_type;size:10;not null;index:idx_resource,priority:1" json:"resource_type"`

	ResourceID uint64 `gorm:"column:resource_id;not null;index:idx_resource,priority:2" json:"resource_id"`

	// Context is a free-form JSON payload.
	Context string `gorm:"column:context;type:text" json:"context,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Activity) TableName() string {
	return "activities"
}
