package model

import "time"

type Folder struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Name string `gorm:"column:name;size:255;not null" json:"name"`

	OwnerID uint64 `gorm:"column:owner_id;not null;index" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	ParentID *uint64 `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	Parent   *Folder `gorm:"foreignKey:ParentID;references:ID" json:"-"`

	IsDeleted bool `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Folder) TableName() string {
	return "folders"
}

/*
ParentID 为空表示根目录 与 File.FolderID 的约定一致
祖先链必须无环 移动文件夹时由 service 层检查
*/
