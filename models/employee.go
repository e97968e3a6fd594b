package models

import "time"

type Employee struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FullName  string `gorm:"type:varchar(255);not null" json:"full_name"`
	Email     string `gorm:"type:varchar(255);unique;not null" json:"email"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
