package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ngocchau04/ktpm-webbansach/models"
)

// GET /voucher/:code - kiểm tra mã giảm giá trước khi thanh toán
func GetVoucherHandler(c *gin.Context, db *gorm.DB) {
	code := c.Param("code")

	var voucher models.Voucher
	err := db.First(&voucher, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Voucher not found",
			})
			return
		}
		log.Printf("Lỗi truy vấn voucher %s: %v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if !voucher.Usable(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Voucher đã hết hạn hoặc hết lượt sử dụng.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   voucher,
	})
}

// POST /voucher/redeem - trừ một lượt sử dụng khi đặt hàng
func RedeemVoucherHandler(c *gin.Context, db *gorm.DB) {
	var redeemReq struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&redeemReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	var voucher models.Voucher
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&voucher, "code = ?", redeemReq.Code).Error; err != nil {
			return err
		}
		if !voucher.Usable(time.Now()) {
			return errVoucherUnusable
		}
		voucher.Quantity--
		return tx.Save(&voucher).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Voucher not found",
			})
			return
		}
		if errors.Is(err, errVoucherUnusable) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Voucher đã hết hạn hoặc hết lượt sử dụng.",
			})
			return
		}
		log.Printf("Lỗi dùng voucher %s: %v", redeemReq.Code, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   voucher,
	})
}

var errVoucherUnusable = errors.New("voucher unusable")

// GET /voucher - admin xem toàn bộ voucher
func GetVoucherListHandler(c *gin.Context, db *gorm.DB) {
	var vouchers []models.Voucher
	if err := db.Order("id desc").Find(&vouchers).Error; err != nil {
		log.Printf("Lỗi truy vấn danh sách voucher: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if vouchers == nil {
		vouchers = []models.Voucher{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   vouchers,
	})
}

// POST /voucher - admin tạo voucher
func CreateVoucherHandler(c *gin.Context, db *gorm.DB) {
	var voucherReq struct {
		Code     string    `json:"code" binding:"required"`
		Discount uint      `json:"discount" binding:"required"`
		Quantity uint      `json:"quantity" binding:"required"`
		ExpireAt time.Time `json:"expireAt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&voucherReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	if voucherReq.Discount > 100 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Giảm giá phải nằm trong khoảng 0-100.",
		})
		return
	}

	voucher := models.Voucher{
		Code:     voucherReq.Code,
		Discount: voucherReq.Discount,
		Quantity: voucherReq.Quantity,
		ExpireAt: voucherReq.ExpireAt,
	}
	if err := db.Create(&voucher).Error; err != nil {
		log.Printf("Lỗi tạo voucher: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   voucher,
	})
}

// DELETE /voucher/:id - admin xóa voucher
func DeleteVoucherHandler(c *gin.Context, db *gorm.DB) {
	voucherID := c.Param("id")

	result := db.Delete(&models.Voucher{}, voucherID)
	if result.Error != nil {
		log.Printf("Lỗi xóa voucher %s: %v", voucherID, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Voucher not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}
