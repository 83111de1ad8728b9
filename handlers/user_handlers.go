package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ngocchau04/ktpm-webbansach/jwt"
	"github.com/ngocchau04/ktpm-webbansach/models"
)

// Kiểm tra email hợp lệ
func ValidateEmail(email string) bool {
	pattern := "^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\\.[a-zA-Z0-9-.]+$"
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// Mật khẩu 8-50 ký tự, có hoa, thường, số, không khoảng trắng
func ValidatePassword(password string) bool {
	if len(password) < 8 || len(password) > 50 {
		return false
	}

	var (
		isUpper = false
		isLower = false
		isDigit = false
		isSpace = false
	)

	for _, s := range password {
		switch {
		case unicode.IsSpace(s):
			isSpace = true
		case unicode.IsUpper(s):
			isUpper = true
		case unicode.IsLower(s):
			isLower = true
		case unicode.IsDigit(s):
			isDigit = true
		}
	}

	return isUpper && isLower && isDigit && !isSpace
}

// Kiểm tra email đã được đăng ký chưa
func IsUserEmailExists(db *gorm.DB, email string) (bool, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// POST /register
func RegisterHandler(c *gin.Context, db *gorm.DB) {
	var registerReq struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&registerReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	if !ValidateEmail(registerReq.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Email không hợp lệ.",
		})
		return
	}

	if !ValidatePassword(registerReq.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Mật khẩu không hợp lệ.",
		})
		return
	}

	exists, err := IsUserEmailExists(db, registerReq.Email)
	if err != nil {
		log.Printf("Lỗi kiểm tra email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Email đã được sử dụng.",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registerReq.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	newUser := models.User{
		Name:     registerReq.Name,
		Email:    registerReq.Email,
		Phone:    registerReq.Phone,
		Password: string(hashedPassword),
		Role:     "user", // role luôn là user, admin tạo tay trong DB
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Lỗi tạo user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   newUser,
	})
}

// POST /login - client cũ gửi email trong field username
func LoginHandler(c *gin.Context, db *gorm.DB, verifier *jwt.Verifier, expireHours int) {
	var loginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	var user models.User
	err := db.First(&user, "email = ?", loginReq.Username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Sai tài khoản hoặc mật khẩu.",
			})
			return
		}
		log.Printf("Lỗi truy vấn user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Sai tài khoản hoặc mật khẩu.",
		})
		return
	}

	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	token, err := verifier.GenerateToken(user.ID, user.Role, expiresAt)
	if err != nil {
		log.Printf("Lỗi tạo token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GET /profile
func GetUserProfileHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var user models.User
	err := db.First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Người dùng không tồn tại.",
			})
			return
		}
		log.Printf("Lỗi truy vấn user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   user,
	})
}

// POST /update-profile - chỉ ghi đè field có trong request
func UpdateUserProfileHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var user models.User
	err := db.First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Người dùng không tồn tại.",
			})
			return
		}
		log.Printf("Lỗi truy vấn user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var updateReq struct {
		Name        *string `json:"name"`
		Phone       *string `json:"phone"`
		Address     *string `json:"address"`
		Email       *string `json:"email"`
		NewPassword *string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	if updateReq.Email != nil {
		if !ValidateEmail(*updateReq.Email) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Email không hợp lệ.",
			})
			return
		}
		user.Email = *updateReq.Email
	}

	if updateReq.NewPassword != nil {
		if !ValidatePassword(*updateReq.NewPassword) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Mật khẩu không hợp lệ.",
			})
			return
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*updateReq.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Server error",
			})
			return
		}
		user.Password = string(hashedPassword)
	}

	if updateReq.Name != nil {
		user.Name = *updateReq.Name
	}
	if updateReq.Phone != nil {
		user.Phone = *updateReq.Phone
	}
	if updateReq.Address != nil {
		user.Address = *updateReq.Address
	}

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Lỗi cập nhật user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   user,
	})
}

// POST /favorite
func AddFavoriteHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var favoriteReq struct {
		ProductID uint `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&favoriteReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	var favorite models.Favorite
	err := db.Where("user_id = ? AND product_id = ?", userID, favoriteReq.ProductID).
		First(&favorite).Error
	if err == nil {
		// Đã yêu thích rồi thì thôi
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   favorite,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Lỗi truy vấn yêu thích của user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	favorite = models.Favorite{
		UserID:    userID,
		ProductID: favoriteReq.ProductID,
	}
	if err := db.Create(&favorite).Error; err != nil {
		log.Printf("Lỗi thêm yêu thích cho user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   favorite,
	})
}

// GET /favorite
func GetFavoritesHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var favorites []models.Favorite
	err := db.Where("user_id = ?", userID).Preload("Product").Find(&favorites).Error
	if err != nil {
		log.Printf("Lỗi truy vấn yêu thích của user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if favorites == nil {
		favorites = []models.Favorite{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   favorites,
	})
}

// DELETE /favorite
func DeleteFavoriteHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var favoriteReq struct {
		ProductID uint `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&favoriteReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	err := db.Unscoped().
		Where("user_id = ? AND product_id = ?", userID, favoriteReq.ProductID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		log.Printf("Lỗi xóa yêu thích của user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}
