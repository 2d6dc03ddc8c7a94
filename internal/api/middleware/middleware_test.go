package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
	"github.com/m04kA/SMC-SlotCalendar/pkg/metrics"
)

func TestAuth(t *testing.T) {
	var (
		gotID    int64
		gotAdmin bool
	)
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
		gotAdmin = IsAdmin(r.Context())
	}))

	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		wantID     int64
		wantAdmin  bool
	}{
		{"user", "5", "", http.StatusOK, 5, false},
		{"admin", "7", "Admin", http.StatusOK, 7, true},
		{"missing", "", "", http.StatusUnauthorized, 0, false},
		{"not a number", "abc", "", http.StatusUnauthorized, 0, false},
		{"negative", "-1", "admin", http.StatusUnauthorized, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotAdmin = 0, false

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(HeaderUserID, tt.userID)
			req.Header.Set(HeaderUserRole, tt.role)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantID, gotID)
			assert.Equal(t, tt.wantAdmin, gotAdmin)
		})
	}
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, got, rec.Header().Get(HeaderRequestID))

	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, existing)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, existing, got)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, time.Minute, logger.Discard())
	defer rl.Close()

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"), "у другого клиента свой лимит")

	rl.cleanup(time.Now().Add(2 * time.Minute))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"), "после очистки лимит начинается заново")
}

func TestRateLimiter_ForwardedFor(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, time.Minute, logger.Discard())
	defer rl.Close()
	require.NoError(t, rl.TrustProxies("10.1.0.0/16"))
	assert.Error(t, rl.TrustProxies("not-a-cidr"))

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote + ":1234"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	// Заголовок от недоверенного клиента не меняет ключ
	assert.Equal(t, http.StatusOK, send("203.0.113.7", "1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7", "2.2.2.2"))

	// Через доверенный прокси ключ - последний недоверенный адрес цепочки
	assert.Equal(t, http.StatusOK, send("10.1.0.5", "9.9.9.9, 198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.1.0.5", "8.8.8.8, 198.51.100.1"))
	assert.Equal(t, http.StatusOK, send("10.1.0.5", "198.51.100.2, 10.1.0.9"))
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "calendar")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "calendar"))
	r.HandleFunc("/orgs/{orgId}/calendar", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orgs/1/calendar", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orgs/2/calendar", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("calendar", http.MethodGet, "/orgs/{orgId}/calendar", "418")))
}
