package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	jwtsvc "hotelier/internal/pkg/jwt"
)

func TestAuth_ValidToken(t *testing.T) {
	secret := "test-secret-123"
	jwtService := jwtsvc.New(secret, 1*time.Hour)
	validToken, _ := jwtService.GenerateToken(42, "front_desk")

	router := gin.New()
	router.Use(Auth(jwtService))

	router.GET("/protected", func(c *gin.Context) {
		staffID, _ := c.Get("staff_id")
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{
			"staff_id": staffID,
			"role":     role,
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "front_desk")
}

func TestAuth_InvalidToken(t *testing.T) {
	jwtService := jwtsvc.New("wrong-secret", 1*time.Hour)

	router := gin.New()
	router.Use(Auth(jwtService))

	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("This handler should not be reached")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-here")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuth_NoToken(t *testing.T) {
	jwtService := jwtsvc.New("secret", 1*time.Hour)

	router := gin.New()
	router.Use(Auth(jwtService))

	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	jwtService := jwtsvc.New("secret", -1*time.Minute)
	expired, _ := jwtService.GenerateToken(42, "front_desk")

	router := gin.New()
	router.Use(Auth(jwtService))

	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
