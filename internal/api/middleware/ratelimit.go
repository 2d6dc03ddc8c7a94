package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов отдельно для каждого клиента.
// Клиент - пользователь из X-User-ID, если Auth уже отработал, иначе IP.
// X-Forwarded-For и X-Real-IP учитываются только от доверенных прокси
type RateLimiter struct {
	rps     rate.Limit
	burst   int
	ttl     time.Duration
	log     Logger
	proxies []*net.IPNet

	mu       sync.Mutex
	visitors map[string]*visitor
	done     chan struct{}
	once     sync.Once
}

// NewRateLimiter создает ограничитель: rps запросов в секунду с запасом burst.
// Клиенты, не приходившие дольше ttl, удаляются фоновой горутиной
func NewRateLimiter(rps float64, burst int, ttl time.Duration, log Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	rl := &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
		log:      log,
		visitors: make(map[string]*visitor),
		done:     make(chan struct{}),
	}
	go rl.cleanupRoutine()
	return rl
}

// TrustProxies задаёт подсети прокси, чьим заголовкам с адресом клиента можно верить.
// Вызывается до начала обслуживания запросов
func (rl *RateLimiter) TrustProxies(cidrs ...string) error {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			return fmt.Errorf("invalid trusted proxy %q: %w", cidr, err)
		}
		nets = append(nets, n)
	}
	rl.proxies = nets
	return nil
}

// Allow проверяет, разрешен ли запрос для данного ключа
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	rl.mu.Unlock()

	return v.limiter.Allow()
}

// Middleware HTTP middleware для mux
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.clientKey(r)
		if !rl.Allow(key) {
			rl.log.Warn("Rate limit exceeded: client=%s, path=%s", key, r.URL.Path)
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Close останавливает cleanup routine
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(rl.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, key)
		}
	}
}

func (rl *RateLimiter) clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	return "ip:" + rl.realIP(r)
}

// realIP адрес соединения, а если оно пришло от доверенного прокси,
// последний недоверенный адрес из X-Forwarded-For или X-Real-IP
func (rl *RateLimiter) realIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !rl.trusted(host) {
		return host
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !rl.trusted(hop) {
				return hop
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return host
}

func (rl *RateLimiter) trusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range rl.proxies {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
