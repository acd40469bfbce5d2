package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/weiwangfds/arsongs/internal/i18n"
)

// ErrorCode 错误码类型
type ErrorCode int

// 定义错误码常量
const (
	// 通用错误码 (1000-1999)
	ErrSuccess            ErrorCode = 0    // 成功
	ErrInternalServer     ErrorCode = 1000 // 服务器内部错误
	ErrInvalidParams      ErrorCode = 1001 // 参数错误
	ErrUnauthorized       ErrorCode = 1002 // 未授权
	ErrForbidden          ErrorCode = 1003 // 禁止访问
	ErrNotFound           ErrorCode = 1004 // 资源未找到
	ErrMethodNotAllowed   ErrorCode = 1005 // 方法不允许
	ErrTooManyRequests    ErrorCode = 1006 // 请求过于频繁
	ErrServiceUnavailable ErrorCode = 1007 // 服务不可用

	// 账户相关错误码 (2000-2999)
	ErrUserAlreadyExists    ErrorCode = 2000 // 用户名或邮箱已存在
	ErrUserNotFound         ErrorCode = 2001 // 账户不存在
	ErrInvalidCredentials   ErrorCode = 2002 // 用户名或密码错误
	ErrAccountInactive      ErrorCode = 2003 // 账户未激活
	ErrAccountAlreadyActive ErrorCode = 2004 // 账户已激活
	ErrOTPOutstanding       ErrorCode = 2005 // 验证码仍在有效期内
	ErrOTPInvalid           ErrorCode = 2006 // 验证码错误或过期
	ErrTokenInvalid         ErrorCode = 2007 // 令牌无效

	// 曲库与歌单相关错误码 (3000-3999)
	ErrSongNotFound          ErrorCode = 3000
	ErrAlbumNotFound         ErrorCode = 3001
	ErrArtistNotFound        ErrorCode = 3002
	ErrTagNotFound           ErrorCode = 3003
	ErrPlaylistNotFound      ErrorCode = 3004
	ErrPlaylistForbidden     ErrorCode = 3005
	ErrPlaylistEntryNotFound ErrorCode = 3006
	ErrPlaylistEmpty         ErrorCode = 3007
	ErrSongAlreadyLiked      ErrorCode = 3008
	ErrSongNotLiked          ErrorCode = 3009
	ErrHistoryNotFound       ErrorCode = 3010
	ErrSongRequestNotFound   ErrorCode = 3011
	ErrCatalogAlreadyExists  ErrorCode = 3012

	// 数据库相关错误码 (4000-4999)
	ErrDatabaseConnection  ErrorCode = 4000 // 数据库连接错误
	ErrDatabaseQuery       ErrorCode = 4001 // 数据库查询错误
	ErrDatabaseInsert      ErrorCode = 4002 // 数据库插入错误
	ErrDatabaseUpdate      ErrorCode = 4003 // 数据库更新错误
	ErrDatabaseDelete      ErrorCode = 4004 // 数据库删除错误
	ErrDatabaseTransaction ErrorCode = 4005 // 数据库事务错误
	ErrRecordNotFound      ErrorCode = 4006 // 记录未找到
	ErrRecordAlreadyExists ErrorCode = 4007 // 记录已存在

	// 存储相关错误码 (5000-5999)
	ErrStorageConfigInvalid        ErrorCode = 5000
	ErrStorageConnectionFailed     ErrorCode = 5001
	ErrStorageDeleteFailed         ErrorCode = 5002
	ErrStorageProviderNotSupported ErrorCode = 5003
)

// AppError 应用错误结构体
// @Description 应用程序统一错误格式
type AppError struct {
	// 错误码
	Code ErrorCode `json:"code"`
	// 错误消息
	Message string `json:"message"`
	// 详细错误信息
	Details string `json:"details,omitempty"`
	// 出错的请求字段，仅参数校验错误使用
	Field string `json:"field,omitempty"`
	// 原始错误
	OriginalError error `json:"-"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 返回原始错误，便于 errors.Is / errors.As 判断
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// WithDetails 添加详细错误信息
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithField 标记出错的请求字段
func (e *AppError) WithField(field string) *AppError {
	e.Field = field
	return e
}

// WithOriginalError 添加原始错误
func (e *AppError) WithOriginalError(err error) *AppError {
	e.OriginalError = err
	if e.Details == "" && err != nil {
		e.Details = err.Error()
	}
	return e
}

// MessageFor 返回指定语言下的错误消息
// 自定义消息（与默认语言翻译不同）保持原样
func (e *AppError) MessageFor(lang string) string {
	if e.Message != "" && e.Message != GetErrorMessage(e.Code) {
		return e.Message
	}
	return GetErrorMessageWithLang(e.Code, lang)
}

// HTTPStatus 返回错误码对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// HTTPStatus 返回错误码对应的HTTP状态码
// 参数错误、验证码错误和重复创建返回400，认证失败返回401，
// 权限不足返回403，资源不存在返回404，其余为500
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrSuccess:
		return http.StatusOK
	case ErrInvalidParams, ErrUserAlreadyExists, ErrAccountAlreadyActive, ErrOTPOutstanding,
		ErrOTPInvalid, ErrSongAlreadyLiked, ErrRecordAlreadyExists, ErrCatalogAlreadyExists:
		return http.StatusBadRequest
	case ErrUnauthorized, ErrInvalidCredentials, ErrAccountInactive, ErrTokenInvalid:
		return http.StatusUnauthorized
	case ErrForbidden, ErrPlaylistForbidden:
		return http.StatusForbidden
	case ErrNotFound, ErrUserNotFound, ErrSongNotFound, ErrAlbumNotFound, ErrArtistNotFound,
		ErrTagNotFound, ErrPlaylistNotFound, ErrPlaylistEntryNotFound, ErrPlaylistEmpty,
		ErrSongNotLiked, ErrHistoryNotFound, ErrSongRequestNotFound, ErrRecordNotFound:
		return http.StatusNotFound
	case ErrMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrTooManyRequests:
		return http.StatusTooManyRequests
	case ErrServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// New 创建新的应用错误，message为空时使用错误码的默认消息
func New(code ErrorCode, message string) *AppError {
	if message == "" {
		message = GetErrorMessage(code)
	}
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Of 使用错误码的默认消息创建应用错误
func Of(code ErrorCode) *AppError {
	return New(code, "")
}

// Invalid 创建参数校验错误
// 参数:
//   - field: 出错的字段名
//   - details: 错误描述
func Invalid(field, details string) *AppError {
	return &AppError{
		Code:    ErrInvalidParams,
		Message: GetErrorMessage(ErrInvalidParams),
		Details: details,
		Field:   field,
	}
}

// Wrap 包装原始错误
func Wrap(code ErrorCode, message string, err error) *AppError {
	appErr := New(code, message)
	appErr.OriginalError = err
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := GetAppError(err)
	return ok
}

// GetAppError 从错误链中提取应用错误
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode 判断错误是否为指定错误码的应用错误
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.Code == code
}

// 错误码到i18n键的映射
var errorCodeToKeyMap = map[ErrorCode]string{
	ErrSuccess:            "success",
	ErrInternalServer:     "internal_server_error",
	ErrInvalidParams:      "invalid_params",
	ErrUnauthorized:       "unauthorized",
	ErrForbidden:          "forbidden",
	ErrNotFound:           "not_found",
	ErrMethodNotAllowed:   "method_not_allowed",
	ErrTooManyRequests:    "too_many_requests",
	ErrServiceUnavailable: "service_unavailable",

	ErrUserAlreadyExists:    "user_already_exists",
	ErrUserNotFound:         "user_not_found",
	ErrInvalidCredentials:   "invalid_credentials",
	ErrAccountInactive:      "account_inactive",
	ErrAccountAlreadyActive: "account_already_active",
	ErrOTPOutstanding:       "otp_outstanding",
	ErrOTPInvalid:           "otp_invalid",
	ErrTokenInvalid:         "token_invalid",

	ErrSongNotFound:          "song_not_found",
	ErrAlbumNotFound:         "album_not_found",
	ErrArtistNotFound:        "artist_not_found",
	ErrTagNotFound:           "tag_not_found",
	ErrPlaylistNotFound:      "playlist_not_found",
	ErrPlaylistForbidden:     "playlist_forbidden",
	ErrPlaylistEntryNotFound: "playlist_entry_not_found",
	ErrPlaylistEmpty:         "playlist_empty",
	ErrSongAlreadyLiked:      "song_already_liked",
	ErrSongNotLiked:          "song_not_liked",
	ErrHistoryNotFound:       "history_not_found",
	ErrSongRequestNotFound:   "song_request_not_found",
	ErrCatalogAlreadyExists:  "catalog_already_exists",

	ErrDatabaseConnection:  "database_connection",
	ErrDatabaseQuery:       "database_query",
	ErrDatabaseInsert:      "database_insert",
	ErrDatabaseUpdate:      "database_update",
	ErrDatabaseDelete:      "database_delete",
	ErrDatabaseTransaction: "database_transaction",
	ErrRecordNotFound:      "record_not_found",
	ErrRecordAlreadyExists: "record_already_exists",

	ErrStorageConfigInvalid:        "storage_config_invalid",
	ErrStorageConnectionFailed:     "storage_connection_failed",
	ErrStorageDeleteFailed:         "storage_delete_failed",
	ErrStorageProviderNotSupported: "storage_provider_not_supported",
}

// GetErrorMessage 根据错误码获取错误消息（使用默认语言）
func GetErrorMessage(code ErrorCode) string {
	return GetErrorMessageWithLang(code, i18n.GetInstance().GetDefaultLanguage())
}

// GetErrorMessageWithLang 根据错误码和语言获取错误消息
// 参数:
//   - code: 错误码
//   - lang: 语言代码，如zh-CN、en-US
func GetErrorMessageWithLang(code ErrorCode, lang string) string {
	key, exists := errorCodeToKeyMap[code]
	if !exists {
		key = "unknown_error"
	}
	return i18n.GetInstance().Translate(key, lang)
}
