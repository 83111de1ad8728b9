package routers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ngocchau04/ktpm-webbansach/handlers"
	"github.com/ngocchau04/ktpm-webbansach/jwt"
	"github.com/ngocchau04/ktpm-webbansach/middleware"
)

func SetupRouters(db *gorm.DB, rdb *redis.Client, verifier *jwt.Verifier, jwtExpireHours int) *gin.Engine {
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Next()
	})
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatalf("Không cấu hình được trusted proxies: %v", err)
	}

	router.Use(middleware.PrometheusMiddleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Ảnh bìa sách
	router.Static("/uploads", "./uploads")

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	checkLogin := middleware.CheckLoginMiddleware(verifier)
	checkAdmin := middleware.CheckAdminPermissionMiddleware(verifier)

	//// Không cần đăng nhập
	router.POST("/register", func(c *gin.Context) {
		handlers.RegisterHandler(c, db)
	})
	router.POST("/login", func(c *gin.Context) {
		handlers.LoginHandler(c, db, verifier, jwtExpireHours)
	})

	search := router.Group("/search")
	{
		search.GET("", func(c *gin.Context) {
			handlers.SearchAllHandler(c, db, rdb)
		})
		search.GET("/top24", func(c *gin.Context) {
			handlers.SearchTop24Handler(c, db)
		})
		search.GET("/top10", func(c *gin.Context) {
			handlers.SearchTop10Handler(c, db)
		})
		search.GET("/sale10", func(c *gin.Context) {
			handlers.SearchSale10Handler(c, db)
		})
		search.POST("/filter", func(c *gin.Context) {
			handlers.SearchFilterHandler(c, db)
		})
	}

	router.GET("/product/:id", func(c *gin.Context) {
		handlers.GetProductDataHandler(c, db)
	})
	router.GET("/review/:productId", func(c *gin.Context) {
		handlers.GetReviewsHandler(c, db)
	})
	router.POST("/feedback", func(c *gin.Context) {
		handlers.CreateFeedbackHandler(c, db)
	})
	router.GET("/voucher/:code", func(c *gin.Context) {
		handlers.GetVoucherHandler(c, db)
	})

	//// Cần đăng nhập
	cart := router.Group("/cart", checkLogin)
	{
		cart.POST("", func(c *gin.Context) {
			handlers.AddToCartHandler(c, db)
		})
		cart.GET("", func(c *gin.Context) {
			handlers.GetCartHandler(c, db)
		})
		cart.DELETE("", func(c *gin.Context) {
			handlers.DeleteCartItemHandler(c, db)
		})
		cart.DELETE("/list", func(c *gin.Context) {
			handlers.DeleteCartItemListHandler(c, db)
		})
	}

	router.POST("/order", checkLogin, func(c *gin.Context) {
		handlers.CreateOrderHandler(c, db)
	})
	router.GET("/order/user", checkLogin, func(c *gin.Context) {
		handlers.GetUserOrdersHandler(c, db)
	})
	router.POST("/order/:id", checkLogin, func(c *gin.Context) {
		handlers.UpdateOrderHandler(c, db)
	})

	router.GET("/profile", checkLogin, func(c *gin.Context) {
		handlers.GetUserProfileHandler(c, db)
	})
	router.POST("/update-profile", checkLogin, func(c *gin.Context) {
		handlers.UpdateUserProfileHandler(c, db)
	})

	favorite := router.Group("/favorite", checkLogin)
	{
		favorite.POST("", func(c *gin.Context) {
			handlers.AddFavoriteHandler(c, db)
		})
		favorite.GET("", func(c *gin.Context) {
			handlers.GetFavoritesHandler(c, db)
		})
		favorite.DELETE("", func(c *gin.Context) {
			handlers.DeleteFavoriteHandler(c, db)
		})
	}

	router.POST("/review", checkLogin, func(c *gin.Context) {
		handlers.CreateReviewHandler(c, db)
	})
	router.POST("/voucher/redeem", checkLogin, func(c *gin.Context) {
		handlers.RedeemVoucherHandler(c, db)
	})

	//// Cần quyền admin
	router.GET("/order", checkAdmin, func(c *gin.Context) {
		handlers.GetAllOrdersHandler(c, db)
	})
	router.PUT("/order/:id/status", checkAdmin, func(c *gin.Context) {
		handlers.UpdateOrderStatusHandler(c, db)
	})
	router.DELETE("/order/:id", checkAdmin, func(c *gin.Context) {
		handlers.DeleteOrderHandler(c, db)
	})

	router.POST("/product", checkAdmin, func(c *gin.Context) {
		handlers.CreateProductHandler(c, db, rdb)
	})
	router.PATCH("/product/:id", checkAdmin, func(c *gin.Context) {
		handlers.UpdateProductHandler(c, db, rdb)
	})
	router.DELETE("/product/:id", checkAdmin, func(c *gin.Context) {
		handlers.DeleteProductHandler(c, db, rdb)
	})

	admin := router.Group("/admin", checkAdmin)
	{
		admin.GET("/users", func(c *gin.Context) {
			handlers.GetUserListHandler(c, db)
		})
	}
	router.POST("/upload", checkAdmin, func(c *gin.Context) {
		handlers.UploadImageHandler(c)
	})
	router.GET("/revenue", checkAdmin, func(c *gin.Context) {
		handlers.GetRevenueHandler(c, db)
	})
	router.GET("/voucher", checkAdmin, func(c *gin.Context) {
		handlers.GetVoucherListHandler(c, db)
	})
	router.POST("/voucher", checkAdmin, func(c *gin.Context) {
		handlers.CreateVoucherHandler(c, db)
	})
	router.DELETE("/voucher/:id", checkAdmin, func(c *gin.Context) {
		handlers.DeleteVoucherHandler(c, db)
	})
	router.GET("/feedback", checkAdmin, func(c *gin.Context) {
		handlers.GetFeedbackListHandler(c, db)
	})

	return router
}
