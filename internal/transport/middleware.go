package transport

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/tailor-flow/internal/metrics"
	portidem "github.com/alanyang/tailor-flow/internal/port/idempotency"
)

// IdempotencyHeader carries the client's retry key on POST requests.
const IdempotencyHeader = "Idempotency-Key"

// noisyPaths are high-frequency read paths logged at Debug to keep Info clean.
var noisyPaths = map[string]bool{
	"/api/presence/":          true,
	"/api/presence/heartbeat": true,
	"/api/chat/messages":      true,
	"/api/ws":                 true,
	"/metrics":                true,
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.Request.Method == http.MethodOptions {
			return
		}
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if noisyPaths[c.Request.URL.Path] && c.Writer.Status() < http.StatusBadRequest {
			slog.Debug("request", attrs...)
			return
		}
		slog.Info("request", attrs...)
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS, PUT")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+IdempotencyHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// MetricsMiddleware records request latency by method and status.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RequestLatency.
			WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// storedResponse is what the idempotency store keeps for a replay.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyMiddleware replays the first response for a repeated POST carrying the
// same Idempotency-Key on the same route. Server errors are not remembered, so the
// client may retry them. Store failures degrade to running the request normally.
func IdempotencyMiddleware(store portidem.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if c.Request.Method != http.MethodPost || key == "" {
			c.Next()
			return
		}

		route := c.Request.Method + " " + c.FullPath()
		storeKey := route + " " + key
		ctx := c.Request.Context()

		if data, ok, err := store.Check(ctx, storeKey); err != nil {
			slog.ErrorContext(ctx, "idempotency check failed", "route", route, "error", err)
		} else if ok {
			var sr storedResponse
			if err := json.Unmarshal(data, &sr); err == nil {
				c.Header("Idempotent-Replayed", "true")
				c.Data(sr.Status, sr.ContentType, []byte(sr.Body))
				c.Abort()
				return
			}
			slog.WarnContext(ctx, "idempotency record unreadable, re-running request", "route", route)
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		if rec.Status() >= http.StatusInternalServerError {
			return
		}
		data, err := json.Marshal(storedResponse{
			Status:      rec.Status(),
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.buf.String(),
		})
		if err != nil {
			return
		}
		if err := store.Store(ctx, storeKey, route, data, ttl); err != nil {
			slog.ErrorContext(ctx, "idempotency store failed", "route", route, "error", err)
		}
	}
}
