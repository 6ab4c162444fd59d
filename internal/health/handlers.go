package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/foodgram-api/internal/common"
)

const statusDisabled = "disabled"

var ready atomic.Bool

func init() { ready.Store(true) }

// SetReady toggles readiness; the server flips it off while draining.
func SetReady(v bool) { ready.Store(v) }

// Pinger is implemented by the store backends.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Store        Pinger
	Redis        redis.UniversalClient
	DBTimeout    time.Duration
	RedisTimeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the store and optional redis probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !ready.Load() {
		common.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting_down"})
		return
	}
	ctx := r.Context()
	status := map[string]string{
		"db":    h.probeDB(ctx),
		"redis": h.probeRedis(ctx),
	}
	code := http.StatusOK
	if status["db"] != "ok" || (status["redis"] != "ok" && status["redis"] != statusDisabled) {
		code = http.StatusServiceUnavailable
	}
	common.JSON(w, code, status)
}

func (h Handler) probeDB(ctx context.Context) string {
	if h.Store == nil {
		return "not configured"
	}
	ctx, cancel := context.WithTimeout(ctx, orDefault(h.DBTimeout, 500*time.Millisecond))
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

func (h Handler) probeRedis(ctx context.Context) string {
	if h.Redis == nil {
		return statusDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, orDefault(h.RedisTimeout, 300*time.Millisecond))
	defer cancel()
	if err := h.Redis.Ping(ctx).Err(); err != nil {
		return err.Error()
	}
	return "ok"
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
