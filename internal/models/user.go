package models

import (
	"time"
)

type User struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string    `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	Name       string    `gorm:"column:name;size:255;not null" json:"name"`
	Phone      string    `gorm:"column:phone;size:20" json:"phone"`
	ReferredBy *int      `gorm:"column:referred_by;index" json:"referred_by"` // weak reference; nulled when the referrer is removed
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
