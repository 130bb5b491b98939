package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is a person using expensebud.
type User struct {
	DefaultModel
	Username  string `json:"username" gorm:"uniqueIndex:idx_user_username" example:"morre"`
	Password  string `json:"-"` // bcrypt hash of the password
	FirstName string `json:"firstName" example:"Maurice"`
	LastName  string `json:"lastName" example:"Moss"`
	Email     string `json:"email" example:"moss@example.com"`
}

func (u User) Self() string {
	return "User"
}

// BeforeSave trims whitespace from string fields and
// verifies that the username is set.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.TrimSpace(u.Email)

	if u.Username == "" {
		return ErrUsernameEmpty
	}

	return nil
}
