package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocchau04/ktpm-webbansach/jwt"
	"github.com/ngocchau04/ktpm-webbansach/middleware"
)

const testSecret = "your_secret_key"

func setupRouter(verifier *jwt.Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/me", middleware.CheckLoginMiddleware(verifier), func(c *gin.Context) {
		userID, _ := c.Get(middleware.ContextUserID)
		role, _ := c.Get(middleware.ContextRole)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
	})
	router.GET("/admin", middleware.CheckAdminPermissionMiddleware(verifier), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	return router
}

func doRequest(router *gin.Engine, path, authHeader string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func makeToken(t *testing.T, verifier *jwt.Verifier, userID uint, role string, ttl time.Duration) string {
	t.Helper()
	token, err := verifier.GenerateToken(userID, role, time.Now().Add(ttl))
	require.NoError(t, err)
	return token
}

func TestCheckLoginNoHeader(t *testing.T) {
	verifier := jwt.NewVerifier(testSecret)
	router := setupRouter(verifier)

	w, body := doRequest(router, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Unauthorized - No token provided", body["message"])
}

func TestCheckLoginBadPrefix(t *testing.T) {
	verifier := jwt.NewVerifier(testSecret)
	router := setupRouter(verifier)
	token := makeToken(t, verifier, 1, "user", time.Hour)

	// Tiền tố phân biệt hoa thường, không chấp nhận "bearer"
	for _, header := range []string{"Token " + token, "bearer " + token, token} {
		w, body := doRequest(router, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token format. Use: Bearer <token>", body["message"])
	}
}

func TestCheckLoginMissingToken(t *testing.T) {
	verifier := jwt.NewVerifier(testSecret)
	router := setupRouter(verifier)

	for _, header := range []string{"Bearer ", "Bearer undefined", "Bearer null", "Bearer  extra-space"} {
		w, body := doRequest(router, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid or missing token", body["message"])
	}
}

func TestCheckLoginInvalidToken(t *testing.T) {
	verifier := jwt.NewVerifier(testSecret)
	router := setupRouter(verifier)

	w, body := doRequest(router, "/me", "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", body["message"])
}

func TestCheckLoginWrongSecret(t *testing.T) {
	other := jwt.NewVerifier("another_secret")
	router := setupRouter(jwt.NewVerifier(testSecret))
	token := makeToken(t, other, 1, "user", time.Hour)

	w, body := doRequest(router, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", body["message"])
}

func TestCheckLoginExpiredToken(t *testing.T) {
	verifier := jwt.NewVerifier(testSecret)
	router := setupRouter(verifier)
	token := makeToken(t, verifier, 1, "user", -time.Hour)

	w, body := doRequest(router, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token expired", body["message"])
}

func TestCheckLoginSuccess(t *testing.T) {
	verifier := jwt.NewVerifier(testSecret)
	router := setupRouter(verifier)
	token := makeToken(t, verifier, 7, "user", time.Hour)

	w, body := doRequest(router, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(7), body["userId"])
	assert.Equal(t, "user", body["role"])
}

func TestCheckAdminAllowsAdminOnly(t *testing.T) {
	verifier := jwt.NewVerifier(testSecret)
	router := setupRouter(verifier)

	adminToken := makeToken(t, verifier, 1, "admin", time.Hour)
	w, body := doRequest(router, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", body["status"])

	// Mọi role khác admin đều bị chặn, kể cả role rỗng
	for _, role := range []string{"user", "", "Admin", "superadmin"} {
		token := makeToken(t, verifier, 2, role, time.Hour)
		w, body := doRequest(router, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "Permission denied", body["message"])
	}
}

func TestCheckAdminRejectsUnauthenticated(t *testing.T) {
	verifier := jwt.NewVerifier(testSecret)
	router := setupRouter(verifier)

	w, body := doRequest(router, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized - No token provided", body["message"])
}
