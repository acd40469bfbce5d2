package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/i18n"
	"github.com/weiwangfds/arsongs/internal/logger"
)

// RequestIDKey gin上下文中请求ID的键
const RequestIDKey = "request_id"

// Response 统一返回值结构体
// @Description API统一响应格式
type Response struct {
	// 状态码，0表示成功，非0表示失败
	Code int `json:"code" example:"0"`
	// 响应消息
	Message string `json:"message" example:"success"`
	// 响应数据
	Data interface{} `json:"data,omitempty"`
	// 请求ID，用于链路追踪
	RequestID string `json:"request_id,omitempty" example:"9b2f7a0e-3c1d-4a8e-9f61-2d5b7c8e0a14"`
	// 时间戳
	Timestamp int64 `json:"timestamp" example:"1640995200"`
}

// ErrorResponse 错误响应结构体
// @Description API错误响应格式
type ErrorResponse struct {
	Code      int    `json:"code" example:"1001"`
	Message   string `json:"message" example:"参数错误"`
	Details   string `json:"details,omitempty"`
	Field     string `json:"field,omitempty" example:"q"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp int64  `json:"timestamp" example:"1640995200"`
}

// PageData 按页码分页的数据结构体
// @Description 分页响应数据格式
type PageData struct {
	// 数据列表
	List interface{} `json:"list"`
	// 总数
	Total int64 `json:"total" example:"100"`
	// 当前页码
	Page int `json:"page" example:"1"`
	// 每页大小
	PageSize int `json:"page_size" example:"24"`
	// 总页数
	TotalPages int `json:"total_pages" example:"5"`
}

// OffsetData 按偏移量分页的数据结构体
// @Description limit/offset 分页响应数据格式
type OffsetData struct {
	List   interface{} `json:"list"`
	Total  int64       `json:"total" example:"100"`
	Limit  int         `json:"limit" example:"10"`
	Offset int         `json:"offset" example:"0"`
}

// now 返回当前时间，测试中可替换
var now = time.Now

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, newResponse(c, "success", data))
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, newResponse(c, message, data))
}

// Created 创建成功响应，返回201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, newResponse(c, "created", data))
}

// NoContent 无内容响应，返回204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SuccessWithPage 按页码分页的成功响应
// 参数:
//   - list: 数据列表
//   - total: 总数
//   - page: 当前页码
//   - pageSize: 每页大小
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}

	Success(c, PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// SuccessWithOffset 按偏移量分页的成功响应
func SuccessWithOffset(c *gin.Context, list interface{}, total int64, p OffsetPage) {
	Success(c, OffsetData{
		List:   list,
		Total:  total,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

// Error 错误响应，HTTP状态码由错误码决定
func Error(c *gin.Context, appErr *errors.AppError) {
	lang := i18n.GetInstance().ResolveLanguage(c.GetHeader("Accept-Language"))
	c.JSON(appErr.HTTPStatus(), ErrorResponse{
		Code:      int(appErr.Code),
		Message:   appErr.MessageFor(lang),
		Details:   appErr.Details,
		Field:     appErr.Field,
		RequestID: getRequestID(c),
		Timestamp: now().Unix(),
	})
}

// AbortWithError 返回错误响应并中止后续处理器
func AbortWithError(c *gin.Context, appErr *errors.AppError) {
	Error(c, appErr)
	c.Abort()
}

// HandleError 统一处理服务层返回的错误
// 非 AppError 的错误按服务器内部错误处理并记录日志
func HandleError(c *gin.Context, err error) {
	appErr, ok := errors.GetAppError(err)
	if !ok {
		logger.WithField(RequestIDKey, getRequestID(c)).Errorf("未处理的错误: %v", err)
		appErr = errors.Of(errors.ErrInternalServer)
	} else if appErr.HTTPStatus() >= http.StatusInternalServerError {
		logger.WithField(RequestIDKey, getRequestID(c)).Errorf("服务错误: %v", appErr)
	}
	// 内部错误不向客户端暴露原始错误信息
	if appErr.HTTPStatus() >= http.StatusInternalServerError {
		appErr = &errors.AppError{Code: appErr.Code, Message: appErr.Message}
	}
	Error(c, appErr)
}

func newResponse(c *gin.Context, message string, data interface{}) Response {
	return Response{
		Code:      int(errors.ErrSuccess),
		Message:   message,
		Data:      data,
		RequestID: getRequestID(c),
		Timestamp: now().Unix(),
	}
}

// getRequestID 从gin上下文中获取请求ID
func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
