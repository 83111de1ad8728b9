package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email     string     `gorm:"unique;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	Role      string     `gorm:"not null;default:user" json:"role"`
	Cart      []CartItem `gorm:"foreignKey:UserID" json:"cart,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:UserID" json:"favorites,omitempty"`
}
