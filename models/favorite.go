package models

import "gorm.io/gorm"

type Favorite struct {
	gorm.Model
	UserID    uint     `gorm:"uniqueIndex:idx_user_favorite;not null" json:"-"`
	ProductID uint     `gorm:"uniqueIndex:idx_user_favorite;not null" json:"productId"`
	Product   *Product `json:"product,omitempty"`
}
