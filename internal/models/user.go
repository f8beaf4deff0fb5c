package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a dashboard account.
type User struct {
	ID           string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string         `gorm:"column:name;type:text" json:"name"`
	Email        string         `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;type:text" json:"-"`
	Roles        pq.StringArray `gorm:"column:roles;type:text[]" json:"roles"`
	CreatedAt    time.Time      `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
