package models

import "time"

type Supplier struct {
	ID          uint   `gorm:"primaryKey"`
	CompanyName string `gorm:"size:150;not null"` // naziv firme
	Phone       string `gorm:"size:30"`
	Email       string `gorm:"size:100"`
	Address     string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
