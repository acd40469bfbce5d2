package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
	"github.com/weiwangfds/arsongs/internal/response"
	"golang.org/x/time/rate"
)

// limiterIdleTTL 客户端限流器闲置多久后被回收
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter 按客户端IP限流
type IPRateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	lastScan time.Time
	now      func() time.Time
}

// NewIPRateLimiter 创建按IP限流器
// 参数:
//   - perSecond: 每秒允许的请求数
//   - burst: 突发容量
func NewIPRateLimiter(perSecond float64, burst int) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow 判断该IP当前请求是否放行
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastScan) > limiterIdleTTL {
		for k, cl := range l.clients {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(l.clients, k)
			}
		}
		l.lastScan = now
	}

	cl, ok := l.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Middleware 返回gin限流中间件，超限时返回429
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.Allow(ip) {
			logger.Warnf("请求过于频繁: ip=%s path=%s", ip, c.Request.URL.Path)
			response.AbortWithError(c, errors.Of(errors.ErrTooManyRequests))
			return
		}
		c.Next()
	}
}
