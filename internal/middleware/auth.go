package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/response"
)

// gin上下文中保存认证信息的键
const (
	UserIDKey   = "user_id"
	UserKey     = "user"
	AuthKeyName = "auth_token"
)

// TokenAuthenticator 根据令牌解析用户
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, key string) (*database.User, error)
}

// OptionalAuth 可选认证
// 未携带令牌时按匿名用户处理，携带了无效令牌则返回401
func OptionalAuth(auth TokenAuthenticator) gin.HandlerFunc {
	return tokenAuth(auth, false)
}

// RequireAuth 必须认证
func RequireAuth(auth TokenAuthenticator) gin.HandlerFunc {
	return tokenAuth(auth, true)
}

// RequireStaff 要求当前用户为管理员，需放在 RequireAuth 之后
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.AbortWithError(c, errors.Of(errors.ErrUnauthorized))
			return
		}
		if !user.IsStaff {
			response.AbortWithError(c, errors.Of(errors.ErrForbidden))
			return
		}
		c.Next()
	}
}

func tokenAuth(auth TokenAuthenticator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, present := extractToken(c.GetHeader("Authorization"))
		if !present {
			if required {
				response.AbortWithError(c, errors.Of(errors.ErrUnauthorized).WithDetails("authentication credentials were not provided"))
				return
			}
			c.Next()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), key)
		if err != nil {
			if appErr, ok := errors.GetAppError(err); ok {
				response.AbortWithError(c, appErr)
				return
			}
			response.AbortWithError(c, errors.Wrap(errors.ErrInternalServer, "", err))
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Set(AuthKeyName, key)
		c.Next()
	}
}

// extractToken 解析 "Token <key>" 或 "Bearer <key>" 格式的认证头
func extractToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", true
	}
	switch strings.ToLower(parts[0]) {
	case "token", "bearer":
		return parts[1], true
	}
	return "", true
}

// CurrentUserID 返回当前用户ID，匿名用户返回0
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CurrentUser 返回当前用户，匿名用户返回nil
func CurrentUser(c *gin.Context) *database.User {
	if v, ok := c.Get(UserKey); ok {
		if u, ok := v.(*database.User); ok {
			return u
		}
	}
	return nil
}

// CurrentToken 返回当前请求使用的令牌
func CurrentToken(c *gin.Context) string {
	return c.GetString(AuthKeyName)
}
