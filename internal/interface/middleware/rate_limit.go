package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/acara-auth/pkg/response"
)

// ipFromCtx extracts the client IP from Gin context, falling back to "unknown"
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(RealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// AllowFunc returns true when the request bypasses the limit.
type AllowFunc func(*gin.Context) bool

// incrExpireScript counts a hit and starts the window on the first one.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// RateLimiter is a fixed-window limiter keyed by scope and client IP.
type RateLimiter struct {
	RDB    *redis.Client
	Prefix string
	Allow  AllowFunc
	Logger *logrus.Logger
}

func NewRateLimiter(rdb *redis.Client, prefix string, allow AllowFunc, logger *logrus.Logger) *RateLimiter {
	return &RateLimiter{RDB: rdb, Prefix: prefix, Allow: allow, Logger: logger}
}

func (l *RateLimiter) key(scope string, c *gin.Context) string {
	return l.Prefix + ":rl:" + scope + ":" + ipFromCtx(c)
}

// Limit allows max requests per window for one scope (e.g. "login").
// It fails open when Redis is unavailable.
func (l *RateLimiter) Limit(scope string, max int, window time.Duration) gin.HandlerFunc {
	if l == nil || l.RDB == nil || max <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if l.Allow != nil && l.Allow(c) {
			c.Next()
			return
		}
		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}

		key := l.key(scope, c)
		res, err := incrExpireScript.Run(c.Request.Context(), l.RDB, []string{key}, window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			if l.Logger != nil {
				l.Logger.WithError(err).WithField("key", key).Warn("rate limit check failed, allowing request")
			}
			c.Next()
			return
		}
		count, pttl := int(res[0]), res[1]

		resetSec := 0
		if pttl > 0 {
			resetSec = int((time.Duration(pttl)*time.Millisecond + time.Second - 1) / time.Second)
		}
		remaining := max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Error(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
