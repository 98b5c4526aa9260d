package models

import (
	"strings"

	"gorm.io/gorm"
)

// Role is fixed at signup; there is no role-change operation.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDriver:
		return true
	}
	return false
}

// ParseRole normalises free-form input. An empty value means driver,
// which is what the signup form defaults to.
func ParseRole(s string) (Role, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleDriver, true
	}
	r := Role(s)
	return r, r.Valid()
}

// User is a row of the profiles collection.
type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     Role   `json:"role" gorm:"type:varchar(16);not null;index"`
}

func (User) TableName() string { return "profiles" }
