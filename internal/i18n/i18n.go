// Package i18n 提供国际化支持
// 负责管理应用程序的语言包和翻译功能
package i18n

import (
	"strings"
	"sync"

	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/weiwangfds/arsongs/internal/logger"
)

// 支持的语言
const (
	LangZhCN = "zh-CN"
	LangEnUS = "en-US"
)

var (
	instance *I18n
	once     sync.Once

	// 语言包存储
	translations = map[string]map[string]string{
		LangZhCN: {
			"success":               "成功",
			"internal_server_error": "服务器内部错误",
			"invalid_params":        "参数错误",
			"unauthorized":          "未授权",
			"forbidden":             "禁止访问",
			"not_found":             "资源未找到",
			"method_not_allowed":    "方法不允许",
			"too_many_requests":     "请求过于频繁",
			"service_unavailable":   "服务不可用",

			"user_already_exists":    "用户名或邮箱已被使用",
			"user_not_found":         "该邮箱对应的账户不存在",
			"invalid_credentials":    "用户名或密码错误",
			"account_inactive":       "账户未激活",
			"account_already_active": "账户已激活",
			"otp_outstanding":        "验证码已发送，请稍后再试",
			"otp_invalid":            "验证码错误或已过期",
			"token_invalid":          "无效的访问令牌",

			"song_not_found":           "歌曲不存在",
			"album_not_found":          "专辑不存在",
			"artist_not_found":         "歌手不存在",
			"tag_not_found":            "标签不存在",
			"playlist_not_found":       "歌单不存在",
			"playlist_forbidden":       "无权访问该歌单",
			"playlist_entry_not_found": "歌单中不存在该歌曲",
			"playlist_empty":           "歌单为空",
			"song_already_liked":       "已经喜欢过这首歌曲",
			"song_not_liked":           "尚未喜欢这首歌曲",
			"history_not_found":        "播放记录不存在",
			"song_request_not_found":   "点歌请求不存在",
			"catalog_already_exists":   "同名条目已存在",

			"database_connection":   "数据库连接错误",
			"database_query":        "数据库查询错误",
			"database_insert":       "数据库插入错误",
			"database_update":       "数据库更新错误",
			"database_delete":       "数据库删除错误",
			"database_transaction":  "数据库事务错误",
			"record_not_found":      "记录未找到",
			"record_already_exists": "记录已存在",

			"storage_config_invalid":         "存储配置无效",
			"storage_connection_failed":      "存储连接失败",
			"storage_delete_failed":          "存储文件删除失败",
			"storage_provider_not_supported": "存储提供商不支持",

			"unknown_error": "未知错误",
		},
		LangEnUS: {
			"success":               "Success",
			"internal_server_error": "Internal Server Error",
			"invalid_params":        "Invalid Parameters",
			"unauthorized":          "Unauthorized",
			"forbidden":             "Forbidden",
			"not_found":             "Resource Not Found",
			"method_not_allowed":    "Method Not Allowed",
			"too_many_requests":     "Too Many Requests",
			"service_unavailable":   "Service Unavailable",

			"user_already_exists":    "Username or email already in use",
			"user_not_found":         "No account with this email",
			"invalid_credentials":    "Invalid username or password",
			"account_inactive":       "Account is not activated",
			"account_already_active": "Account is already activated",
			"otp_outstanding":        "An OTP was already sent, try again later",
			"otp_invalid":            "OTP is invalid or expired",
			"token_invalid":          "Invalid token",

			"song_not_found":           "Song Not Found",
			"album_not_found":          "Album Not Found",
			"artist_not_found":         "Artist Not Found",
			"tag_not_found":            "Tag Not Found",
			"playlist_not_found":       "Playlist Not Found",
			"playlist_forbidden":       "You do not have access to this playlist",
			"playlist_entry_not_found": "Song is not in this playlist",
			"playlist_empty":           "Playlist is empty",
			"song_already_liked":       "Song already liked",
			"song_not_liked":           "Song is not liked",
			"history_not_found":        "History record not found",
			"song_request_not_found":   "Song request not found",
			"catalog_already_exists":   "An entry with this name already exists",

			"database_connection":   "Database Connection Error",
			"database_query":        "Database Query Error",
			"database_insert":       "Database Insert Error",
			"database_update":       "Database Update Error",
			"database_delete":       "Database Delete Error",
			"database_transaction":  "Database Transaction Error",
			"record_not_found":      "Record Not Found",
			"record_already_exists": "Record Already Exists",

			"storage_config_invalid":         "Storage Config Invalid",
			"storage_connection_failed":      "Storage Connection Failed",
			"storage_delete_failed":          "Storage Delete Failed",
			"storage_provider_not_supported": "Storage Provider Not Supported",

			"unknown_error": "Unknown Error",
		},
	}
)

// I18n 国际化管理器
type I18n struct {
	translators map[string]ut.Translator
	defaultLang string
	mu          sync.RWMutex
}

// GetInstance 获取I18n单例
func GetInstance() *I18n {
	once.Do(func() {
		instance = &I18n{
			translators: make(map[string]ut.Translator),
			defaultLang: LangZhCN,
		}
		instance.initTranslators()
	})
	return instance
}

// initTranslators 初始化翻译器并把语言包注册进去
func (i *I18n) initTranslators() {
	zhCN := zh.New()
	enUS := en_US.New()
	uni := ut.New(zhCN, zhCN, enUS)

	langMappings := map[string]string{
		LangZhCN: "zh",
		LangEnUS: "en_US",
	}

	for ourLang, localeLang := range langMappings {
		trans, found := uni.GetTranslator(localeLang)
		if !found {
			logger.Errorf("初始化翻译器失败 for language %s (locale: %s): translator not found", ourLang, localeLang)
			continue
		}
		for key, text := range translations[ourLang] {
			if err := trans.Add(key, text, false); err != nil {
				logger.Warnf("注册翻译失败: %s/%s: %v", ourLang, key, err)
			}
		}
		i.translators[ourLang] = trans
	}

	logger.Debugf("国际化翻译器初始化完成，共 %d 种语言", len(i.translators))
}

// Translate 根据键和语言获取翻译
// 当前语言没有该键时回退到默认语言，仍然没有则返回键本身
func (i *I18n) Translate(key, lang string) string {
	if text, ok := i.lookup(key, lang); ok {
		return text
	}
	if lang != i.GetDefaultLanguage() {
		if text, ok := i.lookup(key, i.GetDefaultLanguage()); ok {
			return text
		}
	}
	logger.Warnf("未找到翻译: %s, 语言: %s", key, lang)
	return key
}

func (i *I18n) lookup(key, lang string) (string, bool) {
	trans, exists := i.translators[lang]
	if !exists {
		return "", false
	}
	text, err := trans.T(key)
	if err != nil {
		return "", false
	}
	return text, true
}

// SetDefaultLanguage 设置默认语言
func (i *I18n) SetDefaultLanguage(lang string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.defaultLang = lang
}

// GetDefaultLanguage 获取默认语言
func (i *I18n) GetDefaultLanguage() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.defaultLang
}

// IsSupportedLanguage 检查语言是否支持
func (i *I18n) IsSupportedLanguage(lang string) bool {
	_, exists := i.translators[lang]
	return exists
}

// ResolveLanguage 从Accept-Language请求头中选出第一个支持的语言
// 例如 "en-US,en;q=0.9" 返回 en-US，"en" 也会映射到 en-US
func (i *I18n) ResolveLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		switch strings.ToLower(strings.SplitN(tag, "-", 2)[0]) {
		case "zh":
			return LangZhCN
		case "en":
			return LangEnUS
		}
	}
	return i.GetDefaultLanguage()
}
