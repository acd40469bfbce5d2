package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/arsongs/internal/logger"
	"github.com/weiwangfds/arsongs/internal/response"
)

// redacted 敏感字段的替换值
const redacted = "[REDACTED]"

// sensitiveBodyKeys 请求体和响应体中需要脱敏的字段
var sensitiveBodyKeys = map[string]struct{}{
	"password":     {},
	"new_password": {},
	"otp":          {},
	"token":        {},
}

// sensitiveHeaders 需要脱敏的请求头
var sensitiveHeaders = map[string]struct{}{
	"Authorization": {},
	"Cookie":        {},
}

// RequestLogEntry 请求日志条目结构
// 包含完整的请求生命周期信息和响应数据
type RequestLogEntry struct {
	TraceID string `json:"trace_id"`

	Method    string            `json:"method"`
	Path      string            `json:"path"`
	Query     map[string]string `json:"query"`
	Headers   map[string]string `json:"headers,omitempty"`
	Body      interface{}       `json:"body,omitempty"`
	ClientIP  string            `json:"client_ip"`
	UserAgent string            `json:"user_agent"`

	StatusCode   int         `json:"status_code"`
	ResponseBody interface{} `json:"response_body,omitempty"`
	ResponseSize int         `json:"response_size"`

	StartTime  string `json:"start_time"`
	DurationMs int64  `json:"duration_ms"`

	Error string `json:"error,omitempty"`
}

// responseWriter 自定义响应写入器，用于捕获响应数据
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 捕获响应数据
func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// RequestLoggerConfig 请求日志中间件配置
type RequestLoggerConfig struct {
	Enabled         bool     // 是否启用
	SkipPaths       []string // 跳过记录的路径
	MaxBodySize     int      // 最大请求体大小（字节）
	IncludeHeaders  bool     // 是否包含请求头
	IncludeBody     bool     // 是否包含请求体
	IncludeResponse bool     // 是否包含响应体
	AsyncLogging    bool     // 是否异步记录
}

// DefaultRequestLoggerConfig 默认配置
func DefaultRequestLoggerConfig(enabled bool) *RequestLoggerConfig {
	return &RequestLoggerConfig{
		Enabled:         enabled,
		SkipPaths:       []string{"/health", "/favicon.ico"},
		MaxBodySize:     64 * 1024,
		IncludeHeaders:  true,
		IncludeBody:     true,
		IncludeResponse: true,
		AsyncLogging:    true,
	}
}

// RequestLogger 创建完整请求日志中间件
// 记录请求和响应内容，密码、验证码和令牌会被脱敏，仅建议在开发环境启用
func RequestLogger(cfg *RequestLoggerConfig) gin.HandlerFunc {
	if cfg == nil || !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		startTime := time.Now()

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		var requestBody interface{}
		if cfg.IncludeBody && c.Request.Body != nil {
			requestBody = readRequestBody(c, cfg.MaxBodySize)
		}

		c.Next()

		entry := &RequestLogEntry{
			TraceID:      c.GetString(response.RequestIDKey),
			Method:       c.Request.Method,
			Path:         c.Request.URL.Path,
			Query:        parseQueryParams(c.Request.URL.RawQuery),
			ClientIP:     c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			StatusCode:   writer.Status(),
			ResponseSize: writer.Size(),
			StartTime:    startTime.Format(time.RFC3339),
			DurationMs:   time.Since(startTime).Milliseconds(),
			Body:         requestBody,
		}
		if cfg.IncludeHeaders {
			entry.Headers = extractHeaders(c.Request.Header)
		}
		if cfg.IncludeResponse && writer.body.Len() > 0 {
			entry.ResponseBody = parseBody(writer.body.Bytes())
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.String()
		}

		if cfg.AsyncLogging {
			go logRequestEntry(entry)
		} else {
			logRequestEntry(entry)
		}
	}
}

// readRequestBody 读取请求体并重置，以便后续处理器读取
func readRequestBody(c *gin.Context, maxSize int) interface{} {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, int64(maxSize)))
	if err != nil {
		return map[string]string{"error": "failed to read request body"}
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if len(body) == 0 {
		return nil
	}
	return parseBody(body)
}

// parseBody 解析JSON并脱敏，非JSON内容按字符串返回
func parseBody(body []byte) interface{} {
	var jsonBody interface{}
	if err := json.Unmarshal(body, &jsonBody); err == nil {
		return redact(jsonBody)
	}
	if len(body) > 512 {
		return string(body[:512]) + "..."
	}
	return string(body)
}

// redact 递归替换敏感字段
func redact(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			if _, ok := sensitiveBodyKeys[strings.ToLower(k)]; ok {
				t[k] = redacted
				continue
			}
			t[k] = redact(val)
		}
		return t
	case []interface{}:
		for i := range t {
			t[i] = redact(t[i])
		}
		return t
	default:
		return v
	}
}

// parseQueryParams 解析查询参数，同名参数只取第一个值
func parseQueryParams(rawQuery string) map[string]string {
	params := make(map[string]string)
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return params
	}
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}

// extractHeaders 提取请求头
func extractHeaders(headers http.Header) map[string]string {
	headerMap := make(map[string]string, len(headers))
	for key, values := range headers {
		if len(values) == 0 {
			continue
		}
		if _, ok := sensitiveHeaders[http.CanonicalHeaderKey(key)]; ok {
			headerMap[key] = redacted
			continue
		}
		headerMap[key] = values[0]
	}
	return headerMap
}

// logRequestEntry 记录请求日志条目
func logRequestEntry(entry *RequestLogEntry) {
	message := fmt.Sprintf("[REQUEST_LOG] %s %s - %d (%dms)",
		entry.Method, entry.Path, entry.StatusCode, entry.DurationMs)

	logJSON, err := json.Marshal(entry)
	if err != nil {
		logger.Errorf("Failed to marshal request log: %v", err)
		return
	}

	switch {
	case entry.StatusCode >= 500:
		logger.Errorf("%s | %s", message, string(logJSON))
	case entry.StatusCode >= 400:
		logger.Warnf("%s | %s", message, string(logJSON))
	default:
		logger.Infof("%s | %s", message, string(logJSON))
	}
}
