package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestDefaultPublicConfig(t *testing.T) {
	cfg := DefaultPublicConfig()
	assert.Equal(t, float64(2), cfg.Rate)
	assert.Equal(t, 10, cfg.Burst)
	assert.Equal(t, time.Minute, cfg.CleanupInterval)
	assert.Equal(t, 5*time.Minute, cfg.MaxAge)
}

func TestWithOverrides(t *testing.T) {
	base := DefaultPublicConfig()

	assert.Equal(t, base, base.WithOverrides(0, 0), "zero values keep defaults")

	cfg := base.WithOverrides(5, 20)
	assert.Equal(t, float64(5), cfg.Rate)
	assert.Equal(t, 20, cfg.Burst)
	assert.Equal(t, base.MaxAge, cfg.MaxAge)
}

func TestNew(t *testing.T) {
	t.Run("creates limiter with config", func(t *testing.T) {
		cfg := Config{Rate: 10, Burst: 20, CleanupInterval: time.Second, MaxAge: time.Minute}
		rl := New(cfg)
		defer rl.Stop()

		assert.NotNil(t, rl)
		assert.Equal(t, float64(10), rl.Config().Rate)
		assert.Equal(t, 20, rl.Config().Burst)
	})

	t.Run("sets default cleanup interval and max age if zero", func(t *testing.T) {
		rl := New(Config{Rate: 10, Burst: 20})
		defer rl.Stop()

		assert.Equal(t, time.Minute, rl.Config().CleanupInterval)
		assert.Equal(t, 5*time.Minute, rl.Config().MaxAge)
	})
}

func TestAllow(t *testing.T) {
	t.Run("allows requests within burst limit then blocks", func(t *testing.T) {
		rl := New(Config{Rate: 1, Burst: 5, CleanupInterval: time.Hour, MaxAge: time.Hour})
		defer rl.Stop()

		for i := 0; i < 5; i++ {
			assert.True(t, rl.Allow("192.168.1.1"), "request %d should be allowed", i)
		}
		assert.False(t, rl.Allow("192.168.1.1"), "request beyond burst should be blocked")
	})

	t.Run("tracks IPs independently", func(t *testing.T) {
		rl := New(Config{Rate: 1, Burst: 1, CleanupInterval: time.Hour, MaxAge: time.Hour})
		defer rl.Stop()

		assert.True(t, rl.Allow("192.168.1.1"))
		assert.False(t, rl.Allow("192.168.1.1"))
		assert.True(t, rl.Allow("192.168.1.2"))
		assert.Equal(t, 2, rl.Len())
	})

	t.Run("refills over time", func(t *testing.T) {
		rl := New(Config{Rate: 20, Burst: 1, CleanupInterval: time.Hour, MaxAge: time.Hour})
		defer rl.Stop()

		assert.True(t, rl.Allow("192.168.1.1"))
		assert.False(t, rl.Allow("192.168.1.1"))
		time.Sleep(100 * time.Millisecond)
		assert.True(t, rl.Allow("192.168.1.1"))
	})
}

func serve(router *gin.Engine, remoteAddr, forwardedFor string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/subscribe", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware(t *testing.T) {
	t.Run("returns 429 with message body when rate limited", func(t *testing.T) {
		rl := New(Config{Rate: 1, Burst: 2, CleanupInterval: time.Hour, MaxAge: time.Hour})
		defer rl.Stop()

		handled := 0
		router := gin.New()
		router.Use(rl.Middleware())
		router.POST("/api/subscribe", func(c *gin.Context) {
			handled++
			c.String(http.StatusOK, "OK")
		})

		for i := 0; i < 2; i++ {
			assert.Equal(t, http.StatusOK, serve(router, "192.168.1.1:12345", "").Code)
		}

		w := serve(router, "192.168.1.1:12345", "")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"message":"Too many requests, please try again later"}`, w.Body.String())
		assert.Equal(t, 2, handled, "blocked request never reaches the handler")
	})

	t.Run("uses X-Forwarded-For header when proxies are trusted", func(t *testing.T) {
		rl := New(Config{Rate: 1, Burst: 2, CleanupInterval: time.Hour, MaxAge: time.Hour})
		defer rl.Stop()

		router := gin.New()
		require.NoError(t, router.SetTrustedProxies([]string{"0.0.0.0/0", "::/0"}))
		router.ForwardedByClientIP = true
		router.Use(rl.Middleware())
		router.POST("/api/subscribe", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})

		for i := 0; i < 2; i++ {
			assert.Equal(t, http.StatusOK, serve(router, "10.0.0.1:12345", "192.168.1.1").Code)
		}
		assert.Equal(t, http.StatusTooManyRequests, serve(router, "10.0.0.1:12345", "192.168.1.1").Code)
		assert.Equal(t, http.StatusOK, serve(router, "10.0.0.1:12345", "192.168.1.2").Code)
	})
}

func TestCleanup(t *testing.T) {
	t.Run("removes stale entries", func(t *testing.T) {
		rl := New(Config{
			Rate:            10,
			Burst:           10,
			CleanupInterval: 50 * time.Millisecond,
			MaxAge:          100 * time.Millisecond,
		})
		defer rl.Stop()

		rl.Allow("192.168.1.1")
		rl.Allow("192.168.1.2")
		assert.Equal(t, 2, rl.Len())

		assert.Eventually(t, func() bool { return rl.Len() == 0 }, 2*time.Second, 25*time.Millisecond)
	})

	t.Run("Stop is idempotent", func(t *testing.T) {
		rl := New(Config{Rate: 10, Burst: 10, CleanupInterval: 10 * time.Millisecond})
		rl.Allow("192.168.1.1")
		rl.Stop()
		assert.NotPanics(t, rl.Stop)
	})
}

func TestConcurrency(t *testing.T) {
	rl := New(Config{Rate: 1000, Burst: 1000, CleanupInterval: time.Hour, MaxAge: time.Hour})
	defer rl.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			ip := "192.168.1." + string(rune('0'+id%10))
			for j := 0; j < 20; j++ {
				rl.Allow(ip)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, rl.Len())
}
