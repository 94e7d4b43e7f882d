package models

import "time"

type UserRole string

const (
	RoleOwner   UserRole = "VLASNIK"
	RoleWorker  UserRole = "RADNIK"
	RoleCourier UserRole = "DOSTAVLJAC"
)

// ValidRole: da li je uloga jedna od podržanih
func ValidRole(r UserRole) bool {
	switch r {
	case RoleOwner, RoleWorker, RoleCourier:
		return true
	}
	return false
}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
