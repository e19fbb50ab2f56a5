package model

import "time"

type File struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	// Name must be unique among live rows in one (owner, folder) slot. The
	// service enforces that under the upload lock, the trash can hold any
	// number of same-named rows so the index stays non-unique.
	Name string `gorm:"column:name;size:255;not null;index:idx_owner_folder_name,priority:3" json:"name"`

	MimeType string `gorm:"column:mime_type;size:127;not null;default:''" json:"mime_type"`

	Size int64 `gorm:"column:size;not null;default:0" json:"size"`

	// StorageKey points at the current version's object; keys are never reused.
	StorageKey string `gorm:"column:storage_key;size:512;not null" json:"storage_key,omitempty"`

	OwnerID uint64 `gorm:"column:owner_id;not null;index:idx_owner_folder_name,priority:1" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	FolderID *uint64 `gorm:"column:folder_id;index;index:idx_owner_folder_name,priority:2" json:"folder_id,omitempty"`
	Folder   *Folder `gorm:"foreignKey:FolderID;references:ID" json:"-"`

	Checksum string `gorm:"column:checksum;size:64;not null;default:''" json:"checksum"`

	IsDeleted bool `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (File) TableName() string {
	return "files"
}
