package model

import "time"

type FileVersion struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	FileID uint64 `gorm:"column:file_id;not null;uniqueIndex:uk_file_version,priority:1" json:"file_id"`
	File   File   `gorm:"foreignKey:FileID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	// VersionNumber starts at 1 and grows without gaps per file. The unique
	// index makes concurrent uploads racing for the same number fail loudly.
	VersionNumber int `gorm:"column:version_number;not null;uniqueIndex:uk_file_version,priority:2" json:"version_number"`

	StorageKey string `gorm:"column:storage_key;size:512;not null" json:"storage_key,omitempty"`

	Size int64 `gorm:"column:size;not null;default:0" json:"size"`

	Checksum string `gorm:"column:checksum;size:64;not null;default:''" json:"checksum"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (FileVersion) TableName() string {
	return "file_versions"
}
