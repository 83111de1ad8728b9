package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ngocchau04/ktpm-webbansach/middleware"
	"github.com/ngocchau04/ktpm-webbansach/models"
	"github.com/ngocchau04/ktpm-webbansach/rabbitmq"
)

var orderEvents *rabbitmq.RabbitMQ

// SetRabbitMQ gắn publisher sự kiện đơn hàng, nil thì bỏ qua việc publish
func SetRabbitMQ(rmq *rabbitmq.RabbitMQ) {
	orderEvents = rmq
}

func publishOrderEvent(orderID uint, eventType string) {
	if orderEvents == nil {
		return
	}
	if err := orderEvents.PublishOrderEvent(orderID, eventType); err != nil {
		log.Printf("Failed to publish order %s event: %v", eventType, err)
	}
}

type orderItemRequest struct {
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

func validOrderItems(items []orderItemRequest) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity == 0 {
			return false
		}
	}
	return true
}

// Chép dòng hàng sang bản ghi mới, client không điều khiển được ID
func newOrderItems(items []orderItemRequest) []models.OrderItem {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return orderItems
}

// POST /order - tạo đơn hàng mới, trạng thái pending
func CreateOrderHandler(c *gin.Context, db *gorm.DB) {
	success := false
	defer func() {
		middleware.RecordOrderOperation("create", success)
	}()

	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var orderReq struct {
		UserID   uint               `json:"userId"`
		Name     string             `json:"name"`
		Phone    string             `json:"phone"`
		Email    string             `json:"email"`
		Address  string             `json:"address"`
		Products []orderItemRequest `json:"products"`
		Type     string             `json:"type"`
		Total    uint               `json:"total"`
		Discount uint               `json:"discount"`
	}
	if err := c.ShouldBindJSON(&orderReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	// Kiểm tra danh tính trước mọi việc khác, payload thiếu field cũng vậy
	if orderReq.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Permission denied",
		})
		return
	}

	if !validOrderItems(orderReq.Products) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid order items",
		})
		return
	}

	// Dòng hàng và tổng tiền lấy nguyên từ client, không tính lại ở server
	newOrder := models.Order{
		UserID:   userID,
		Products: newOrderItems(orderReq.Products),
		Name:     orderReq.Name,
		Phone:    orderReq.Phone,
		Email:    orderReq.Email,
		Address:  orderReq.Address,
		Type:     orderReq.Type,
		Total:    orderReq.Total,
		Discount: orderReq.Discount,
		Status:   models.OrderPending,
	}

	if err := db.Create(&newOrder).Error; err != nil {
		log.Printf("Lỗi tạo đơn hàng cho user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	success = true
	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   newOrder,
	})

	publishOrderEvent(newOrder.ID, "created")
}

// GET /order - admin xem tất cả đơn hàng
func GetAllOrdersHandler(c *gin.Context, db *gorm.DB) {
	var orders []models.Order
	err := db.Preload("Products").Order("id desc").Find(&orders).Error
	if err != nil {
		log.Printf("Lỗi truy vấn danh sách đơn hàng: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   orders,
	})
}

// GET /order/user - đơn hàng của chính user đang đăng nhập.
// Client cũ vẫn gửi userId trong body nên chấp nhận nhưng phải khớp token.
func GetUserOrdersHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var listReq struct {
		UserID uint `json:"userId"`
	}
	_ = c.ShouldBindJSON(&listReq)

	if listReq.UserID != 0 && listReq.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Permission denied",
		})
		return
	}

	var orders []models.Order
	err := db.Where("user_id = ?", userID).Preload("Products").Order("id desc").Find(&orders).Error
	if err != nil {
		log.Printf("Lỗi truy vấn đơn hàng của user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   orders,
	})
}

// POST /order/:id - chủ đơn sửa thông tin nhận hàng khi còn pending
func UpdateOrderHandler(c *gin.Context, db *gorm.DB) {
	success := false
	defer func() {
		middleware.RecordOrderOperation("update", success)
	}()

	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	orderID := c.Param("id")

	var order models.Order
	err := db.Preload("Products").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Order not found",
			})
			return
		}
		log.Printf("Lỗi truy vấn đơn hàng %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Permission denied",
		})
		return
	}

	// Đơn đã xử lý thì chủ đơn không sửa được nữa
	if order.Status != models.OrderPending {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Order cannot be updated",
		})
		return
	}

	var updateReq struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
		Address *string `json:"address"`
		Type    *string `json:"type"`
	}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	if updateReq.Name != nil {
		order.Name = *updateReq.Name
	}
	if updateReq.Phone != nil {
		order.Phone = *updateReq.Phone
	}
	if updateReq.Email != nil {
		order.Email = *updateReq.Email
	}
	if updateReq.Address != nil {
		order.Address = *updateReq.Address
	}
	if updateReq.Type != nil {
		order.Type = *updateReq.Type
	}

	if err := db.Save(&order).Error; err != nil {
		log.Printf("Lỗi cập nhật đơn hàng %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	success = true
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   order,
	})
}

// Chuyển trạng thái theo bảng, trả lỗi nếu bước chuyển không hợp lệ.
// Chuyển sang completed thì cộng soldCount cho từng sản phẩm trong đơn.
func transitionOrder(db *gorm.DB, order *models.Order, newStatus string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		order.Status = newStatus
		if err := tx.Save(order).Error; err != nil {
			return err
		}

		if newStatus != models.OrderCompleted {
			return nil
		}
		for _, item := range order.Products {
			err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("sold_count", gorm.Expr("sold_count + ?", item.Quantity)).
				Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// PUT /order/:id/status - admin chuyển trạng thái đơn hàng
func UpdateOrderStatusHandler(c *gin.Context, db *gorm.DB) {
	success := false
	defer func() {
		middleware.RecordOrderOperation("update_status", success)
	}()

	orderID := c.Param("id")

	var statusReq struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&statusReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	var order models.Order
	err := db.Preload("Products").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Order not found",
			})
			return
		}
		log.Printf("Lỗi truy vấn đơn hàng %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if !models.ValidOrderStatus(statusReq.Status) ||
		!models.CanTransitionOrder(order.Status, statusReq.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid status transition",
		})
		return
	}

	if err := transitionOrder(db, &order, statusReq.Status); err != nil {
		log.Printf("Lỗi chuyển trạng thái đơn hàng %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	success = true
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   order,
	})

	publishOrderEvent(order.ID, "status_updated")
}

// DELETE /order/:id - không xóa record, chỉ chuyển sang cancel
func DeleteOrderHandler(c *gin.Context, db *gorm.DB) {
	success := false
	defer func() {
		middleware.RecordOrderOperation("cancel", success)
	}()

	orderID := c.Param("id")

	var order models.Order
	err := db.Preload("Products").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Order not found",
			})
			return
		}
		log.Printf("Lỗi truy vấn đơn hàng %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if !models.CanTransitionOrder(order.Status, models.OrderCancel) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid status transition",
		})
		return
	}

	if err := transitionOrder(db, &order, models.OrderCancel); err != nil {
		log.Printf("Lỗi hủy đơn hàng %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	success = true
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   order,
	})

	publishOrderEvent(order.ID, "status_updated")
}
