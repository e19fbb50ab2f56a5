package model

import "time"

type User struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Email string `gorm:"column:email;type:varchar(255);not null;unique" json:"email"`

	Password string `gorm:"column:password;type:varchar(255);not null" json:"-"`

	Name string `gorm:"column:name;type:varchar(120);not null;default:''" json:"name"`

	EmailVerified bool `gorm:"column:email_verified;not null;default:false" json:"email_verified"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}
