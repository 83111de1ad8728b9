package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ngocchau04/ktpm-webbansach/models"
)

// POST /review - đánh giá sách, tính lại rating trung bình của sản phẩm
func CreateReviewHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var reviewReq struct {
		ProductID uint   `json:"productId" binding:"required"`
		Rating    uint   `json:"rating" binding:"required"`
		Comment   string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&reviewReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	if reviewReq.Rating < 1 || reviewReq.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Đánh giá phải từ 1 đến 5 sao.",
		})
		return
	}

	var product models.Product
	err := db.First(&product, reviewReq.ProductID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Product not found",
			})
			return
		}
		log.Printf("Lỗi truy vấn sản phẩm %d: %v", reviewReq.ProductID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	review := models.Review{
		ProductID: reviewReq.ProductID,
		UserID:    userID,
		Rating:    reviewReq.Rating,
		Comment:   reviewReq.Comment,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var avg float64
		err := tx.Model(&models.Review{}).
			Where("product_id = ?", reviewReq.ProductID).
			Select("AVG(rating)").
			Scan(&avg).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Product{}).
			Where("id = ?", reviewReq.ProductID).
			Update("rating", avg).Error
	})
	if err != nil {
		log.Printf("Lỗi tạo đánh giá cho sản phẩm %d: %v", reviewReq.ProductID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   review,
	})
}

// GET /review/:productId
func GetReviewsHandler(c *gin.Context, db *gorm.DB) {
	productID := c.Param("productId")

	var reviews []models.Review
	err := db.Where("product_id = ?", productID).Order("id desc").Find(&reviews).Error
	if err != nil {
		log.Printf("Lỗi truy vấn đánh giá của sản phẩm %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   reviews,
	})
}
