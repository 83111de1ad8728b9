package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocchau04/ktpm-webbansach/models"
)

func TestCreateOrderHandlerRejectsOtherUser(t *testing.T) {
	// userId trong body khác với token thì chặn luôn, chưa chạm tới DB
	body := `{"userId":2,"name":"A","products":[{"productId":1,"quantity":1}],"total":100}`
	c, w := newAuthedTestContext(t, http.MethodPost, "/order", body, 1)

	CreateOrderHandler(c, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Permission denied")
}

func TestCreateOrderHandlerRejectsOtherUserBeforeValidation(t *testing.T) {
	// Payload thiếu sản phẩm nhưng sai danh tính thì vẫn phải trả 403, không phải 400
	body := `{"userId":2}`
	c, w := newAuthedTestContext(t, http.MethodPost, "/order", body, 1)

	CreateOrderHandler(c, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Permission denied")
}

func TestCreateOrderHandlerMissingProducts(t *testing.T) {
	body := `{"userId":1,"name":"A","total":100}`
	c, w := newAuthedTestContext(t, http.MethodPost, "/order", body, 1)

	CreateOrderHandler(c, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid order items")
}

func TestCreateOrderHandlerZeroQuantity(t *testing.T) {
	body := `{"userId":1,"products":[{"productId":1,"quantity":0}],"total":100}`
	c, w := newAuthedTestContext(t, http.MethodPost, "/order", body, 1)

	CreateOrderHandler(c, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid order items")
}

func TestCreateOrderHandlerMissingUserInContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req, err := http.NewRequest(http.MethodPost, "/order", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	c.Request = req

	CreateOrderHandler(c, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateOrderHandlerPersistsPendingOrder(t *testing.T) {
	db := setupTestDB(t)

	// Client gửi kèm ID cho dòng hàng cũng không ghi đè được bản ghi có sẵn
	body := `{"userId":1,"name":"A","email":"a@b.c","products":[{"ID":9,"productId":3,"quantity":2}],"total":100}`
	c, w := newAuthedTestContext(t, http.MethodPost, "/order", body, 1)

	CreateOrderHandler(c, db)
	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Order
	require.NoError(t, db.Preload("Products").First(&stored).Error)
	assert.Equal(t, models.OrderPending, stored.Status)
	assert.Equal(t, uint(1), stored.UserID)
	require.Len(t, stored.Products, 1)
	assert.NotEqual(t, uint(9), stored.Products[0].ID)
	assert.Equal(t, uint(3), stored.Products[0].ProductID)
	assert.Equal(t, uint(2), stored.Products[0].Quantity)
}

func TestOrderItemsNotClientControlled(t *testing.T) {
	var items []orderItemRequest
	payload := `[{"ID":5,"CreatedAt":"2020-01-01T00:00:00Z","productId":1,"quantity":2}]`
	require.NoError(t, json.Unmarshal([]byte(payload), &items))

	orderItems := newOrderItems(items)
	require.Len(t, orderItems, 1)
	assert.Zero(t, orderItems[0].ID)
	assert.True(t, orderItems[0].CreatedAt.IsZero())
	assert.Equal(t, uint(1), orderItems[0].ProductID)
	assert.Equal(t, uint(2), orderItems[0].Quantity)
}

func TestValidOrderItems(t *testing.T) {
	assert.False(t, validOrderItems(nil))
	assert.False(t, validOrderItems([]orderItemRequest{}))
	assert.False(t, validOrderItems([]orderItemRequest{{ProductID: 1, Quantity: 0}}))
	assert.False(t, validOrderItems([]orderItemRequest{{ProductID: 0, Quantity: 1}}))
	assert.True(t, validOrderItems([]orderItemRequest{{ProductID: 1, Quantity: 1}}))
}

func TestGetUserOrdersHandlerRejectsOtherUser(t *testing.T) {
	body := `{"userId":99}`
	c, w := newAuthedTestContext(t, http.MethodGet, "/order/user", body, 1)

	GetUserOrdersHandler(c, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Permission denied")
}

func TestUpdateOrderHandlerRejectsNonPending(t *testing.T) {
	db := setupTestDB(t)

	order := models.Order{UserID: 1, Name: "A", Status: models.OrderProcessing}
	require.NoError(t, db.Create(&order).Error)

	c, w := newAuthedTestContext(t, http.MethodPost, "/order/1", `{"name":"B"}`, 1)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(order.ID)}}

	UpdateOrderHandler(c, db)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Order cannot be updated")
}

func TestUpdateOrderHandlerUpdatesPendingOrder(t *testing.T) {
	db := setupTestDB(t)

	order := models.Order{UserID: 1, Name: "A", Status: models.OrderPending}
	require.NoError(t, db.Create(&order).Error)

	c, w := newAuthedTestContext(t, http.MethodPost, "/order/1", `{"name":"B","address":"HCM"}`, 1)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(order.ID)}}

	UpdateOrderHandler(c, db)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, "B", stored.Name)
	assert.Equal(t, "HCM", stored.Address)
	assert.Equal(t, models.OrderPending, stored.Status)
}
