package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngocchau04/ktpm-webbansach/models"
)

func isValidImageExtension(file *multipart.FileHeader) bool {
	allowExtensions := []string{".jpg", ".jpeg", ".png"}
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowExt := range allowExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

func makeUniqueFileName(file *multipart.FileHeader) string {
	return fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
}

// GET /admin/users
func GetUserListHandler(c *gin.Context, db *gorm.DB) {
	var users []struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	err := db.Model(&models.User{}).
		Select("id", "name", "email", "role").
		Find(&users).Error
	if err != nil {
		log.Printf("Lỗi truy vấn danh sách user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   users,
	})
}

// POST /upload - ảnh bìa sách, lưu vào thư mục uploads
func UploadImageHandler(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	if !isValidImageExtension(file) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Chỉ chấp nhận ảnh jpg, jpeg, png.",
		})
		return
	}

	uploadsDir := "./uploads"
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		log.Printf("Lỗi tạo thư mục uploads: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	imageName := makeUniqueFileName(file)
	filePath := filepath.Join(uploadsDir, imageName)
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		log.Printf("Lỗi lưu ảnh: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data": gin.H{
			"imgSrc": "/" + filepath.ToSlash(filePath),
		},
	})
}

// GET /revenue - doanh thu từ các đơn đã hoàn thành
func GetRevenueHandler(c *gin.Context, db *gorm.DB) {
	var totalRevenue int64
	err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderCompleted).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error
	if err != nil {
		log.Printf("Lỗi tính doanh thu: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var statusCounts []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	err = db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&statusCounts).Error
	if err != nil {
		log.Printf("Lỗi đếm đơn hàng theo trạng thái: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"totalRevenue": totalRevenue,
			"orders":       statusCounts,
		},
	})
}
