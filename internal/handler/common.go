// Package handler 提供HTTP处理器
// 处理器只负责参数解析和响应输出，业务逻辑在 service 包中
package handler

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/response"
)

// RegisterValidation 让参数校验错误使用JSON字段名
func RegisterValidation() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	}
}

// bindJSON 解析JSON请求体，失败时输出400并返回false
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, bindError(err))
		return false
	}
	return true
}

// bindError 将绑定错误转换为带字段名的参数错误
func bindError(err error) *errors.AppError {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.Invalid(fe.Field(), describe(fe))
	}
	return errors.Invalid("", err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// pathID 解析路径中的正整数ID，失败时输出400并返回false
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, errors.Invalid(name, "must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// queryID 解析可选的正整数查询参数，缺失时返回0
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.Error(c, errors.Invalid(name, "must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// queryBool 解析布尔查询参数，"true"、"1" 为真
func queryBool(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}
