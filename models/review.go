package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	ProductID uint   `gorm:"index;not null" json:"productId"`
	UserID    uint   `gorm:"not null" json:"userId"`
	Rating    uint   `gorm:"not null" json:"rating"`
	Comment   string `json:"comment"`
}
