package models

import "gorm.io/gorm"

// Bản sao dòng hàng tại thời điểm đặt, không tham chiếu sống đến Product
type OrderItem struct {
	gorm.Model
	OrderID   uint `gorm:"index" json:"-"`
	ProductID uint `gorm:"not null" json:"productId"`
	Quantity  uint `gorm:"not null" json:"quantity"`
}
