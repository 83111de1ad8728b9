package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocchau04/ktpm-webbansach/models"
)

func cartOf(items ...models.CartItem) []models.CartItem {
	return items
}

func TestUpsertCartItemAppendsNewProduct(t *testing.T) {
	cart := cartOf()

	cart = upsertCartItem(cart, 10, 2)
	require.Len(t, cart, 1)
	assert.Equal(t, uint(10), cart[0].ProductID)
	assert.Equal(t, uint(2), cart[0].Quantity)

	cart = upsertCartItem(cart, 20, 3)
	require.Len(t, cart, 2)
	assert.Equal(t, uint(20), cart[1].ProductID)
	assert.Equal(t, uint(3), cart[1].Quantity)
}

func TestUpsertCartItemReplacesQuantity(t *testing.T) {
	// Thêm cùng một sản phẩm hai lần thì số lượng bị ghi đè, không cộng dồn
	cart := cartOf()
	cart = upsertCartItem(cart, 10, 2)
	cart = upsertCartItem(cart, 10, 5)

	require.Len(t, cart, 1)
	assert.Equal(t, uint(5), cart[0].Quantity)
}

func TestRemoveCartItem(t *testing.T) {
	cart := cartOf(
		models.CartItem{ProductID: 10, Quantity: 1},
		models.CartItem{ProductID: 20, Quantity: 2},
	)

	cart = removeCartItem(cart, 10)
	require.Len(t, cart, 1)
	assert.Equal(t, uint(20), cart[0].ProductID)
}

func TestRemoveCartItemAbsentProductIsNoop(t *testing.T) {
	cart := cartOf(
		models.CartItem{ProductID: 10, Quantity: 1},
		models.CartItem{ProductID: 20, Quantity: 2},
	)

	cart = removeCartItem(cart, 999)
	assert.Len(t, cart, 2)
}

func TestRemoveCartItemsPartialMatch(t *testing.T) {
	// Xóa n id nhưng chỉ k id có trong giỏ thì giỏ còn m-k món
	cart := cartOf(
		models.CartItem{ProductID: 10, Quantity: 1},
		models.CartItem{ProductID: 20, Quantity: 2},
		models.CartItem{ProductID: 30, Quantity: 3},
	)

	cart = removeCartItems(cart, []uint{10, 30, 999, 1000})
	require.Len(t, cart, 1)
	assert.Equal(t, uint(20), cart[0].ProductID)
}

func TestRemoveCartItemsEmptyList(t *testing.T) {
	cart := cartOf(models.CartItem{ProductID: 10, Quantity: 1})

	cart = removeCartItems(cart, nil)
	assert.Len(t, cart, 1)
}

func TestAddToCartThenGetPopulatesProduct(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Email: "a@b.c", Password: "x", Role: "user"}
	require.NoError(t, db.Create(&user).Error)
	product := models.Product{Title: "Dế Mèn Phiêu Lưu Ký", Price: 50000, Type: "v"}
	require.NoError(t, db.Create(&product).Error)

	body := fmt.Sprintf(`{"productId":%d,"quantity":2}`, product.ID)
	c, w := newAuthedTestContext(t, http.MethodPost, "/cart", body, user.ID)
	AddToCartHandler(c, db)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sản phẩm đã được thêm vào giỏ hàng.")

	// GET /cart phải trả về dòng hàng kèm thông tin sản phẩm đầy đủ
	c2, w2 := newAuthedTestContext(t, http.MethodGet, "/cart", "", user.ID)
	GetCartHandler(c2, db)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "Dế Mèn Phiêu Lưu Ký")
	assert.Contains(t, w2.Body.String(), `"quantity":2`)
}

func TestAddToCartReplacesQuantityInDB(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Email: "a@b.c", Password: "x", Role: "user"}
	require.NoError(t, db.Create(&user).Error)

	for _, quantity := range []uint{2, 5} {
		body := fmt.Sprintf(`{"productId":10,"quantity":%d}`, quantity)
		c, w := newAuthedTestContext(t, http.MethodPost, "/cart", body, user.ID)
		AddToCartHandler(c, db)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var cart []models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&cart).Error)
	require.Len(t, cart, 1)
	assert.Equal(t, uint(5), cart[0].Quantity)
}
