package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func setupIdempotencyRouter(t *testing.T, handler gin.HandlerFunc) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id_validated", "user-1")
		c.Next()
	})
	r.Use(middleware.Idempotency(rdb))
	r.POST("/api/v1/employees", handler)
	r.GET("/api/v1/employees", handler)
	return r, mock
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/api/v1/employees:user-1:req-123"
	const lockKey = cacheKey + ":lock"

	t.Run("first request runs the handler and caches the body", func(t *testing.T) {
		handled := false
		r, mock := setupIdempotencyRouter(t, func(c *gin.Context) {
			handled = true
			c.JSON(http.StatusCreated, gin.H{"id": "abc"})
		})

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, `{"id":"abc"}`, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := postWithKey(r, "req-123")

		assert.True(t, handled)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get("X-Idempotent-Replay"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cached result replays without touching the handler", func(t *testing.T) {
		handled := false
		r, mock := setupIdempotencyRouter(t, func(c *gin.Context) {
			handled = true
		})

		mock.ExpectGet(cacheKey).SetVal(`{"id":"abc"}`)

		w := postWithKey(r, "req-123")

		assert.False(t, handled)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get("X-Idempotent-Replay"))
		assert.JSONEq(t, `{"id":"abc"}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent request with the same key gets a conflict", func(t *testing.T) {
		r, mock := setupIdempotencyRouter(t, func(c *gin.Context) {
			t.Fatal("handler must not run while another request holds the lock")
		})

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := postWithKey(r, "req-123")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed handler result is not cached", func(t *testing.T) {
		r, mock := setupIdempotencyRouter(t, func(c *gin.Context) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid"})
		})

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		// Tidak ada ExpectSet: respon gagal tidak boleh masuk cache.
		mock.ExpectDel(lockKey).SetVal(1)

		w := postWithKey(r, "req-123")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("request without a key bypasses redis entirely", func(t *testing.T) {
		r, mock := setupIdempotencyRouter(t, func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"id": "abc"})
		})

		w := postWithKey(r, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-POST methods bypass redis", func(t *testing.T) {
		r, mock := setupIdempotencyRouter(t, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
		req.Header.Set("Idempotency-Key", "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
