package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ngocchau04/ktpm-webbansach/models"
)

// Đọc danh sách sản phẩm từ Redis, cache trống thì build lại từ DB
func loadAllProducts(c *gin.Context, db *gorm.DB, rdb *redis.Client) ([]models.Product, error) {
	cached, err := rdb.ZRange(c, productsCacheKey, 0, -1).Result()
	if err == nil && len(cached) > 0 {
		products := make([]models.Product, 0, len(cached))
		for _, member := range cached {
			var product models.Product
			if err := json.Unmarshal([]byte(member), &product); err != nil {
				log.Printf("Lỗi đọc cache sản phẩm: %v", err)
				continue
			}
			products = append(products, product)
		}
		return products, nil
	}

	var products []models.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}

	rdb.Del(c, productsCacheKey)
	for i := range products {
		productJSON, err := json.Marshal(&products[i])
		if err != nil {
			continue
		}
		if err := rdb.ZAdd(c, productsCacheKey, redis.Z{
			Score:  float64(products[i].ID),
			Member: productJSON,
		}).Err(); err != nil {
			log.Printf("Lỗi ghi cache sản phẩm: %v", err)
			break
		}
	}

	return products, nil
}

// GET /search - toàn bộ sản phẩm
func SearchAllHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	products, err := loadAllProducts(c, db, rdb)
	if err != nil {
		log.Printf("Lỗi truy vấn danh sách sản phẩm: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GET /search/top24 - 24 sản phẩm mới nhất
func SearchTop24Handler(c *gin.Context, db *gorm.DB) {
	var products []models.Product
	err := db.Order("id desc").Limit(24).Find(&products).Error
	if err != nil {
		log.Printf("Lỗi truy vấn sản phẩm mới: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GET /search/top10 - 10 sản phẩm bán chạy nhất
func SearchTop10Handler(c *gin.Context, db *gorm.DB) {
	var products []models.Product
	err := db.Where("sold_count > 0").Order("sold_count desc").Limit(10).Find(&products).Error
	if err != nil {
		log.Printf("Lỗi truy vấn sản phẩm bán chạy: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GET /search/sale10 - 10 sản phẩm giảm giá sâu nhất
func SearchSale10Handler(c *gin.Context, db *gorm.DB) {
	var products []models.Product
	err := db.Where("discount > 0").Order("discount desc").Limit(10).Find(&products).Error
	if err != nil {
		log.Printf("Lỗi truy vấn sản phẩm giảm giá: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// POST /search/filter?page=&limit=
func SearchFilterHandler(c *gin.Context, db *gorm.DB) {
	var filterReq struct {
		Type             string `json:"type"`
		Title            string `json:"title"`
		Author           string `json:"author"`
		MinPrice         *uint  `json:"minPrice"`
		MaxPrice         *uint  `json:"maxPrice"`
		IsSortByPrice    bool   `json:"isSortByPrice"`
		IsSortByRating   bool   `json:"isSortByRating"`
		IsSortByDiscount bool   `json:"isSortByDiscount"`
	}
	if err := c.ShouldBindJSON(&filterReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	query := db.Model(&models.Product{})
	if filterReq.Type != "" {
		query = query.Where("type = ?", filterReq.Type)
	}
	if filterReq.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filterReq.Title)+"%")
	}
	if filterReq.Author != "" {
		query = query.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(filterReq.Author)+"%")
	}
	if filterReq.MinPrice != nil {
		query = query.Where("price >= ?", *filterReq.MinPrice)
	}
	if filterReq.MaxPrice != nil {
		query = query.Where("price <= ?", *filterReq.MaxPrice)
	}

	switch {
	case filterReq.IsSortByPrice:
		query = query.Order("price desc")
	case filterReq.IsSortByRating:
		query = query.Order("rating desc")
	case filterReq.IsSortByDiscount:
		query = query.Order("discount desc")
	default:
		query = query.Order("id")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		log.Printf("Lỗi đếm kết quả tìm kiếm: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	var products []models.Product
	err = query.Offset((page - 1) * limit).Limit(limit).Find(&products).Error
	if err != nil {
		log.Printf("Lỗi tìm kiếm sản phẩm: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Server error",
		})
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"data":       products,
		"totalCount": totalCount,
		"page":       page,
		"limit":      limit,
	})
}
