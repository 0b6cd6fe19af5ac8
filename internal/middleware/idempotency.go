package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// bodyCapture menyalin body response supaya bisa disimpan sebagai
// hasil idempotent replay.
type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id_validated")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock" // Key khusus untuk locking

		// 1. Cek cache hasil request sebelumnya; replay verbatim.
		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			c.Header("X-Idempotent-Replay", "true")
			c.Data(http.StatusOK, "application/json", []byte(val))
			c.Abort()
			return
		}

		// 2. Atomic lock (SetNX). Jika sudah ada, berarti request lain
		// dengan key yang sama sedang berjalan. Expiry pendek agar lock
		// otomatis hilang kalau server crash.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "Request dengan idempotency key yang sama sedang diproses.",
			})
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		// 3. Simpan hanya hasil sukses; kegagalan boleh dicoba ulang
		// dengan key yang sama.
		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			_ = rdb.Set(c.Request.Context(), cacheKey, capture.buf.String(), idempotencyTTL).Err()
		}
		_ = rdb.Del(c.Request.Context(), lockKey).Err()
	}
}
