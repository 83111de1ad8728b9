package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ngocchau04/ktpm-webbansach/models"
)

const productsCacheKey = "products"

// Cache danh sách sản phẩm trong Redis: sorted set, score là ID sản phẩm
func UpdateProductToRedis(c *gin.Context, rdb *redis.Client, product *models.Product) error {
	productJSON, err := json.Marshal(product)
	if err != nil {
		return err
	}

	score := strconv.Itoa(int(product.ID))
	if err := rdb.ZRemRangeByScore(c, productsCacheKey, score, score).Err(); err != nil {
		return err
	}

	return rdb.ZAdd(c, productsCacheKey, redis.Z{
		Score:  float64(product.ID),
		Member: productJSON,
	}).Err()
}

func RemoveProductFromRedis(c *gin.Context, rdb *redis.Client, productID uint) error {
	score := strconv.Itoa(int(productID))
	return rdb.ZRemRangeByScore(c, productsCacheKey, score, score).Err()
}

// GET /product/:id
func GetProductDataHandler(c *gin.Context, db *gorm.DB) {
	productID := c.Param("id")

	var product models.Product
	err := db.First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Product not found",
			})
			return
		}
		log.Printf("Lỗi truy vấn sản phẩm %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   product,
	})
}

// POST /product - admin thêm sách mới
func CreateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	var productReq struct {
		ImgSrc   string `json:"imgSrc"`
		Title    string `json:"title" binding:"required"`
		Author   string `json:"author"`
		Price    uint   `json:"price" binding:"required"`
		Discount uint   `json:"discount"`
		Stock    uint   `json:"stock"`
		Type     string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&productReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	if productReq.Discount > 100 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Giảm giá phải nằm trong khoảng 0-100.",
		})
		return
	}

	product := models.Product{
		ImgSrc:   productReq.ImgSrc,
		Title:    productReq.Title,
		Author:   productReq.Author,
		Price:    productReq.Price,
		Discount: productReq.Discount,
		Stock:    productReq.Stock,
		Type:     productReq.Type,
	}

	if err := db.Create(&product).Error; err != nil {
		log.Printf("Lỗi tạo sản phẩm: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if err := UpdateProductToRedis(c, rdb, &product); err != nil {
		// Cache lỗi không chặn request, lần đọc sau sẽ tự build lại
		log.Printf("Lỗi cập nhật cache sản phẩm %d: %v", product.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   product,
	})
}

// PATCH /product/:id - chỉ ghi đè field có trong request
func UpdateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	productID := c.Param("id")

	var productReq struct {
		ImgSrc   *string `json:"imgSrc"`
		Title    *string `json:"title"`
		Author   *string `json:"author"`
		Price    *uint   `json:"price"`
		Discount *uint   `json:"discount"`
		Stock    *uint   `json:"stock"`
		Type     *string `json:"type"`
	}
	if err := c.ShouldBindJSON(&productReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	var product models.Product
	err := db.First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Product not found",
			})
			return
		}
		log.Printf("Lỗi truy vấn sản phẩm %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if productReq.Discount != nil && *productReq.Discount > 100 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Giảm giá phải nằm trong khoảng 0-100.",
		})
		return
	}

	if productReq.ImgSrc != nil {
		product.ImgSrc = *productReq.ImgSrc
	}
	if productReq.Title != nil {
		product.Title = *productReq.Title
	}
	if productReq.Author != nil {
		product.Author = *productReq.Author
	}
	if productReq.Price != nil {
		product.Price = *productReq.Price
	}
	if productReq.Discount != nil {
		product.Discount = *productReq.Discount
	}
	if productReq.Stock != nil {
		product.Stock = *productReq.Stock
	}
	if productReq.Type != nil {
		product.Type = *productReq.Type
	}

	if err := db.Save(&product).Error; err != nil {
		log.Printf("Lỗi cập nhật sản phẩm %d: %v", product.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if err := UpdateProductToRedis(c, rdb, &product); err != nil {
		log.Printf("Lỗi cập nhật cache sản phẩm %d: %v", product.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   product,
	})
}

// DELETE /product/:id
func DeleteProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	productID := c.Param("id")

	var product models.Product
	err := db.First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Product not found",
			})
			return
		}
		log.Printf("Lỗi truy vấn sản phẩm %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if err := db.Delete(&product).Error; err != nil {
		log.Printf("Lỗi xóa sản phẩm %d: %v", product.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if err := RemoveProductFromRedis(c, rdb, product.ID); err != nil {
		log.Printf("Lỗi xóa cache sản phẩm %d: %v", product.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}
