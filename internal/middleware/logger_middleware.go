package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/weiwangfds/arsongs/internal/logger"
	"github.com/weiwangfds/arsongs/internal/response"
)

// RequestIDHeader 请求ID响应头
const RequestIDHeader = "X-Request-ID"

// LoggerMiddleware 访问日志中间件
type LoggerMiddleware struct {
	logger    *logrus.Logger
	skipPaths map[string]struct{}
}

// NewLoggerMiddleware 创建访问日志中间件实例
// 参数:
//   - skipPaths: 不记录访问日志的路径，例如健康检查
func NewLoggerMiddleware(skipPaths ...string) *LoggerMiddleware {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}
	return &LoggerMiddleware{
		logger:    logger.GetLogger(),
		skipPaths: skip,
	}
}

// RequestID 为每个请求分配请求ID
// 客户端传入的 X-Request-ID 会被沿用
func (m *LoggerMiddleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog 结构化访问日志
func (m *LoggerMiddleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if _, skip := m.skipPaths[path]; skip {
			return
		}

		status := c.Writer.Status()
		fields := logrus.Fields{
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
			"method":     c.Request.Method,
			"path":       path,
			"raw_query":  raw,
			"user_agent": c.Request.UserAgent(),
			"request_id": c.GetString(response.RequestIDKey),
		}
		if userID, ok := c.Get(UserIDKey); ok {
			fields["user_id"] = userID
		}
		if len(c.Errors) > 0 {
			fields["error"] = c.Errors.String()
		}

		entry := m.logger.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("HTTP Request")
		case status >= 400:
			entry.Warn("HTTP Request")
		default:
			entry.Info("HTTP Request")
		}
	}
}
