package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ngocchau04/ktpm-webbansach/models"
)

// POST /feedback - góp ý, không cần đăng nhập
func CreateFeedbackHandler(c *gin.Context, db *gorm.DB) {
	var feedbackReq struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&feedbackReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	feedback := models.Feedback{
		Name:    feedbackReq.Name,
		Email:   feedbackReq.Email,
		Message: feedbackReq.Message,
	}
	if err := db.Create(&feedback).Error; err != nil {
		log.Printf("Lỗi lưu góp ý: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   feedback,
	})
}

// GET /feedback - admin xem góp ý
func GetFeedbackListHandler(c *gin.Context, db *gorm.DB) {
	var feedbacks []models.Feedback
	if err := db.Order("id desc").Find(&feedbacks).Error; err != nil {
		log.Printf("Lỗi truy vấn góp ý: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   feedbacks,
	})
}
