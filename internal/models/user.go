package models

import (
	"slices"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type Permission string

const (
	PermissionRead  Permission = "Read"
	PermissionWrite Permission = "Write"
	PermissionAdmin Permission = "Admin"
)

// Valid reports whether p is a known permission.
func (p Permission) Valid() bool {
	return p == PermissionRead || p == PermissionWrite || p == PermissionAdmin
}

// DefaultPermissions are granted to users created without an explicit set.
func DefaultPermissions() []Permission {
	return []Permission{PermissionRead}
}

type User struct {
	ID                      uint64       `gorm:"primarykey" json:"id"`
	Username                string       `gorm:"type:varchar(100);uniqueIndex:idx_users_username;not null" json:"username"`
	Email                   string       `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null" json:"email"`
	PasswordHash            string       `gorm:"type:varchar(255);not null" json:"-"`
	FirstName               string       `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName                string       `gorm:"type:varchar(100);not null" json:"lastName"`
	Role                    Role         `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	Permissions             []Permission `gorm:"serializer:json;type:text" json:"permissions"`
	ResetPasswordOTP        *string      `gorm:"column:reset_password_otp;type:varchar(10)" json:"-"`
	ResetPasswordOTPExpires *time.Time   `gorm:"column:reset_password_otp_expires" json:"-"`
	CreatedBy               *uint64      `gorm:"index" json:"createdBy"`
	UpdatedBy               *uint64      `gorm:"index" json:"updatedBy"`
	CreatedAt               time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt               time.Time    `json:"updatedAt"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// HasPermission reports whether the user carries p.
func (u User) HasPermission(p Permission) bool {
	return slices.Contains(u.Permissions, p)
}
