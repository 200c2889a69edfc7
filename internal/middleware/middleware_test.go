package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(secret)
	require.NoError(t, err)
	return s
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := c.Get("userID")
		role, _ := c.Get("userRole")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	router.GET("/secure", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	router := protectedRouter()
	now := time.Now()

	validClaims := jwt.MapClaims{
		"uid":  "7",
		"role": "user",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}

	t.Run("valid token passes", func(t *testing.T) {
		w := doRequest(router, "Bearer "+signedToken(t, validClaims, testSecret))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})

	t.Run("missing header refuses", func(t *testing.T) {
		w := doRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "authorization_required")
	})

	t.Run("non-bearer scheme refuses", func(t *testing.T) {
		w := doRequest(router, "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret refuses", func(t *testing.T) {
		w := doRequest(router, "Bearer "+signedToken(t, validClaims, []byte("other")))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token refuses", func(t *testing.T) {
		expired := jwt.MapClaims{
			"uid":  "7",
			"role": "user",
			"iat":  now.Add(-2 * time.Hour).Unix(),
			"exp":  now.Add(-time.Hour).Unix(),
		}
		w := doRequest(router, "Bearer "+signedToken(t, expired, testSecret))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing uid refuses", func(t *testing.T) {
		claims := jwt.MapClaims{
			"role": "user",
			"exp":  now.Add(time.Hour).Unix(),
		}
		w := doRequest(router, "Bearer "+signedToken(t, claims, testSecret))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing role refuses", func(t *testing.T) {
		claims := jwt.MapClaims{
			"uid": "7",
			"exp": now.Add(time.Hour).Unix(),
		}
		w := doRequest(router, "Bearer "+signedToken(t, claims, testSecret))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown role refuses", func(t *testing.T) {
		claims := jwt.MapClaims{
			"uid":  "7",
			"role": "superuser",
			"exp":  now.Add(time.Hour).Unix(),
		}
		w := doRequest(router, "Bearer "+signedToken(t, claims, testSecret))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	router := protectedRouter(RequireAdmin())
	now := time.Now()

	t.Run("admin passes", func(t *testing.T) {
		claims := jwt.MapClaims{
			"uid":  "1",
			"role": "admin",
			"exp":  now.Add(time.Hour).Unix(),
		}
		w := doRequest(router, "Bearer "+signedToken(t, claims, testSecret))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		claims := jwt.MapClaims{
			"uid":  "7",
			"role": "user",
			"exp":  now.Add(time.Hour).Unix(),
		}
		w := doRequest(router, "Bearer "+signedToken(t, claims, testSecret))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
