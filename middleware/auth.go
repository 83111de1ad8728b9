package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ngocchau04/ktpm-webbansach/jwt"
)

const (
	ContextUserID = "UserID"
	ContextRole   = "Role"

	adminRole = "admin"
)

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{
		"status":  "error",
		"message": message,
	})
}

// Lấy token từ header Authorization và giải mã danh tính.
// Trả về false nếu đã ghi response lỗi.
func verifyRequest(c *gin.Context, verifier *jwt.Verifier) (jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized - No token provided")
		return jwt.Claims{}, false
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		abortWithError(c, http.StatusUnauthorized, "Invalid token format. Use: Bearer <token>")
		return jwt.Claims{}, false
	}

	token := strings.Split(authHeader, " ")[1]
	if token == "" || token == "undefined" || token == "null" {
		abortWithError(c, http.StatusUnauthorized, "Invalid or missing token")
		return jwt.Claims{}, false
	}

	claims, err := verifier.VerifyToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			abortWithError(c, http.StatusUnauthorized, "Token expired")
		} else {
			abortWithError(c, http.StatusUnauthorized, "Invalid token")
		}
		return jwt.Claims{}, false
	}

	return claims, true
}

// Yêu cầu đã đăng nhập (bất kỳ role nào)
func CheckLoginMiddleware(verifier *jwt.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyRequest(c, verifier)
		if !ok {
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// Yêu cầu role admin, các role khác đều bị từ chối
func CheckAdminPermissionMiddleware(verifier *jwt.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyRequest(c, verifier)
		if !ok {
			return
		}

		if claims.Role != adminRole {
			abortWithError(c, http.StatusForbidden, "Permission denied")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}
