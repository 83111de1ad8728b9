package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ngocchau04/ktpm-webbansach/middleware"
	"github.com/ngocchau04/ktpm-webbansach/models"
)

func getUserID(c *gin.Context) (uint, bool) {
	value, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// Ghi đè số lượng nếu sản phẩm đã có trong giỏ, không cộng dồn
func upsertCartItem(cart []models.CartItem, productID, quantity uint) []models.CartItem {
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity = quantity
			return cart
		}
	}
	return append(cart, models.CartItem{
		ProductID: productID,
		Quantity:  quantity,
	})
}

// Xóa một sản phẩm khỏi giỏ, không có cũng không sao
func removeCartItem(cart []models.CartItem, productID uint) []models.CartItem {
	filtered := cart[:0]
	for _, item := range cart {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Xóa nhiều sản phẩm trong một lần duyệt, id không khớp được bỏ qua
func removeCartItems(cart []models.CartItem, productIDs []uint) []models.CartItem {
	remove := make(map[uint]bool, len(productIDs))
	for _, id := range productIDs {
		remove[id] = true
	}

	filtered := cart[:0]
	for _, item := range cart {
		if !remove[item.ProductID] {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func loadCart(db *gorm.DB, userID uint) ([]models.CartItem, error) {
	var cart []models.CartItem
	err := db.Where("user_id = ?", userID).Order("id").Find(&cart).Error
	return cart, err
}

// Ghi lại toàn bộ giỏ hàng. Hai request ghi cùng lúc thì request sau
// thắng (last write wins trên cả mảng), chấp nhận được với giỏ hàng.
func saveCart(db *gorm.DB, userID uint, cart []models.CartItem) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
		if err != nil {
			return err
		}
		if len(cart) == 0 {
			return nil
		}
		for i := range cart {
			cart[i].ID = 0
			cart[i].UserID = userID
			cart[i].Product = nil
		}
		return tx.Omit(clause.Associations).Create(&cart).Error
	})
}

func userExists(db *gorm.DB, userID uint) (bool, error) {
	var user models.User
	err := db.Select("id").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// POST /cart
func AddToCartHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var cartReq struct {
		ProductID uint `json:"productId" binding:"required"`
		Quantity  uint `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&cartReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	exists, err := userExists(db, userID)
	if err != nil {
		log.Printf("Lỗi truy vấn user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Lỗi khi thêm sản phẩm vào giỏ hàng.",
		})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Người dùng không tồn tại.",
		})
		return
	}

	cart, err := loadCart(db, userID)
	if err == nil {
		cart = upsertCartItem(cart, cartReq.ProductID, cartReq.Quantity)
		err = saveCart(db, userID, cart)
	}
	if err != nil {
		log.Printf("Lỗi cập nhật giỏ hàng của user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Lỗi khi thêm sản phẩm vào giỏ hàng.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sản phẩm đã được thêm vào giỏ hàng.",
		"cart":    cart,
	})
}

// GET /cart - giỏ hàng kèm thông tin sản phẩm đầy đủ
func GetCartHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	exists, err := userExists(db, userID)
	if err != nil {
		log.Printf("Lỗi truy vấn user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Lỗi khi lấy giỏ hàng.",
		})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Người dùng không tồn tại.",
		})
		return
	}

	var cart []models.CartItem
	err = db.Where("user_id = ?", userID).Order("id").Preload("Product").Find(&cart).Error
	if err != nil {
		log.Printf("Lỗi truy vấn giỏ hàng của user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Lỗi khi lấy giỏ hàng.",
		})
		return
	}

	if cart == nil {
		cart = []models.CartItem{}
	}
	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// DELETE /cart
func DeleteCartItemHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var deleteReq struct {
		ProductID uint `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&deleteReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	cart, err := loadCart(db, userID)
	if err == nil {
		cart = removeCartItem(cart, deleteReq.ProductID)
		err = saveCart(db, userID, cart)
	}
	if err != nil {
		log.Printf("Lỗi xóa sản phẩm khỏi giỏ hàng của user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Lỗi khi xóa sản phẩm khỏi giỏ hàng.",
		})
		return
	}

	if cart == nil {
		cart = []models.CartItem{}
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Sản phẩm đã được xóa khỏi giỏ hàng.",
		"cart":    cart,
	})
}

// DELETE /cart/list - xóa nhiều sản phẩm một lượt (sau khi đặt hàng)
func DeleteCartItemListHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var deleteReq struct {
		IDs []uint `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&deleteReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	exists, err := userExists(db, userID)
	if err != nil {
		log.Printf("Lỗi truy vấn user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Lỗi khi xóa sản phẩm khỏi giỏ hàng.",
		})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Người dùng không tồn tại.",
		})
		return
	}

	cart, err := loadCart(db, userID)
	if err == nil {
		cart = removeCartItems(cart, deleteReq.IDs)
		err = saveCart(db, userID, cart)
	}
	if err != nil {
		log.Printf("Lỗi xóa sản phẩm khỏi giỏ hàng của user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Lỗi khi xóa sản phẩm khỏi giỏ hàng.",
		})
		return
	}

	if cart == nil {
		cart = []models.CartItem{}
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Sản phẩm đã được xóa khỏi giỏ hàng.",
		"cart":    cart,
	})
}
