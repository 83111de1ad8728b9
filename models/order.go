package models

import "gorm.io/gorm"

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancel     = "cancel"
)

// Bảng chuyển trạng thái hợp lệ của đơn hàng.
// completed và cancel là trạng thái cuối, không chuyển tiếp được nữa.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancel},
	OrderProcessing: {OrderCompleted},
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancel:
		return true
	}
	return false
}

func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	gorm.Model
	UserID   uint        `gorm:"index;not null" json:"userId"`
	Products []OrderItem `gorm:"foreignKey:OrderID" json:"products"`
	Name     string      `json:"name"`
	Phone    string      `json:"phone"`
	Email    string      `json:"email"`
	Address  string      `json:"address"`
	Type     string      `json:"type"`
	Total    uint        `json:"total"`
	Discount uint        `gorm:"default:0" json:"discount"`
	Status   string      `gorm:"not null;default:pending" json:"status"`
}
