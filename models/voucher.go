package models

import (
	"time"

	"gorm.io/gorm"
)

type Voucher struct {
	gorm.Model
	Code     string    `gorm:"unique;not null" json:"code"`
	Discount uint      `gorm:"not null" json:"discount"`
	Quantity uint      `gorm:"default:0" json:"quantity"`
	ExpireAt time.Time `json:"expireAt"`
}

func (v *Voucher) Usable(now time.Time) bool {
	return v.Quantity > 0 && now.Before(v.ExpireAt)
}
