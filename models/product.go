package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	ImgSrc    string  `json:"imgSrc"`
	Title     string  `gorm:"not null" json:"title"`
	Author    string  `json:"author"`
	Price     uint    `gorm:"not null" json:"price"`
	Discount  uint    `gorm:"default:0" json:"discount"`
	Stock     uint    `gorm:"default:0" json:"stock"`
	SoldCount uint    `gorm:"default:0" json:"soldCount"`
	Rating    float64 `gorm:"default:0" json:"rating"`
	Type      string  `gorm:"size:1" json:"type"`
}
