package models

import "gorm.io/gorm"

type Feedback struct {
	gorm.Model
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `gorm:"not null" json:"message"`
}
