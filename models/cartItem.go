package models

import "gorm.io/gorm"

// Mỗi user có một giỏ hàng, mỗi sản phẩm chỉ xuất hiện một dòng
type CartItem struct {
	gorm.Model
	UserID    uint     `gorm:"uniqueIndex:idx_user_product;not null" json:"-"`
	ProductID uint     `gorm:"uniqueIndex:idx_user_product;not null" json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  uint     `gorm:"not null" json:"quantity"`
}
