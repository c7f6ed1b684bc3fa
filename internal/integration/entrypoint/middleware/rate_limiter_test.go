package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/bill-center/backend/internal/domain/error"
	"github.com/bill-center/backend/internal/integration/entrypoint/dto"
)

func newLimitedEngine(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/limited", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiterWithConfig(2, time.Minute)
	engine := newLimitedEngine(rl)

	wantStatuses := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i, want := range wantStatuses {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		if w.Code != want {
			t.Fatalf("request %d status = %d, want %d", i+1, w.Code, want)
		}
		if want == http.StatusTooManyRequests {
			var body dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Code != string(domainerror.ErrCodeRateLimited) {
				t.Errorf("code = %s, want %s", body.Code, domainerror.ErrCodeRateLimited)
			}
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", w.Code)
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Minute)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.allow("k") {
		t.Fatal("first request denied")
	}
	if rl.allow("k") {
		t.Fatal("second request allowed inside window")
	}

	now = now.Add(2 * time.Minute)
	if !rl.allow("k") {
		t.Error("request denied after window reset")
	}

	now = now.Add(2 * time.Minute)
	rl.Cleanup()
	if len(rl.entries) != 0 {
		t.Errorf("entries after cleanup = %d, want 0", len(rl.entries))
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	engine := newLimitedEngine(NewRateLimiterWithConfig(0, time.Minute))
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}
}
