// Package config 负责加载应用配置
// 配置来源依次为：默认值、YAML配置文件、ARSONGS_ 前缀的环境变量
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/weiwangfds/arsongs/internal/logger"
)

// EnvPrefix 环境变量前缀，例如 ARSONGS_DATABASE_DSN
const EnvPrefix = "ARSONGS"

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      logger.Config  `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Mail     MailConfig     `mapstructure:"mail"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Share    ShareConfig    `mapstructure:"share"`
	Content  ContentConfig  `mapstructure:"content"`
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Port         int    `mapstructure:"port"`          // HTTP端口
	HTTPSPort    int    `mapstructure:"https_port"`    // HTTPS端口
	Mode         string `mapstructure:"mode"`          // gin模式：debug、release、test
	ReadTimeout  int    `mapstructure:"read_timeout"`  // 读超时（秒）
	WriteTimeout int    `mapstructure:"write_timeout"` // 写超时（秒）
	EnableHTTPS  bool   `mapstructure:"enable_https"`  // 是否启用HTTPS
	EnableHTTP2  bool   `mapstructure:"enable_http2"`  // HTTPS下是否启用HTTP/2
	TLSCertFile  string `mapstructure:"tls_cert_file"`
	TLSKeyFile   string `mapstructure:"tls_key_file"`
	// AllowOrigins CORS允许的来源
	AllowOrigins []string `mapstructure:"allow_origins"`
	// RequestLog 是否启用完整请求日志（仅建议开发环境）
	RequestLog bool `mapstructure:"request_log"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // sqlite 或 postgres
	DSN             string `mapstructure:"dsn"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
	LogLevel        string `mapstructure:"log_level"`         // silent、error、warn、info
}

// AuthConfig 认证与OTP配置
type AuthConfig struct {
	OTPLength int           `mapstructure:"otp_length"`
	OTPTTL    time.Duration `mapstructure:"otp_ttl"`
	// RateLimit 认证接口每个客户端IP每秒允许的请求数，0表示不限流
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// MailConfig SMTP邮件配置
type MailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// StorageConfig 远程媒体资源存储配置
// Provider 可选值：none、github、aliyun、tencent、qiniu
type StorageConfig struct {
	Provider string        `mapstructure:"provider"`
	GitHub   GitHubConfig  `mapstructure:"github"`
	Bucket   BucketConfig  `mapstructure:"bucket"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Cleanup  CleanupConfig `mapstructure:"cleanup"`
}

// CleanupConfig 远程文件后台删除队列配置
// MaxRetries 为 0 时删除失败只记录日志，不再重试
type CleanupConfig struct {
	QueueSize     int           `mapstructure:"queue_size"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// GitHubConfig 基于Git仓库的文件托管配置
type GitHubConfig struct {
	Token  string `mapstructure:"token"`
	Owner  string `mapstructure:"owner"` // 为空时使用令牌对应的用户
	Repo   string `mapstructure:"repo"`
	Branch string `mapstructure:"branch"`
	APIURL string `mapstructure:"api_url"` // GitHub Enterprise 或测试地址
}

// BucketConfig 对象存储（阿里云、腾讯云、七牛云）通用配置
type BucketConfig struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"`
}

// ShareConfig 分享页配置
type ShareConfig struct {
	AppBaseURL   string `mapstructure:"app_base_url"`   // 前端应用地址
	MediaBaseURL string `mapstructure:"media_base_url"` // 媒体资源访问地址
}

// ContentConfig 内容接口配置
type ContentConfig struct {
	SlidesFile         string `mapstructure:"slides_file"`
	SearchDefaultLimit int    `mapstructure:"search_default_limit"`
	SearchMaxLimit     int    `mapstructure:"search_max_limit"`
	PageDefaultLimit   int    `mapstructure:"page_default_limit"`
	PageMaxLimit       int    `mapstructure:"page_max_limit"`
}

// setDefaults 设置所有配置项的默认值
// 环境变量覆盖只对已知键生效，因此每个键都需要默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.https_port", 8443)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.enable_https", false)
	v.SetDefault("server.enable_http2", true)
	v.SetDefault("server.tls_cert_file", "")
	v.SetDefault("server.tls_key_file", "")
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.request_log", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/arsongs.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.file_path", "logs/app.log")

	v.SetDefault("auth.otp_length", 6)
	v.SetDefault("auth.otp_ttl", "2m")
	v.SetDefault("auth.rate_limit", 5)
	v.SetDefault("auth.rate_burst", 10)

	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")

	v.SetDefault("storage.provider", "none")
	v.SetDefault("storage.timeout", "15s")
	v.SetDefault("storage.cleanup.queue_size", 100)
	v.SetDefault("storage.cleanup.max_retries", 5)
	v.SetDefault("storage.cleanup.retry_interval", "30s")
	v.SetDefault("storage.github.token", "")
	v.SetDefault("storage.github.owner", "")
	v.SetDefault("storage.github.repo", "")
	v.SetDefault("storage.github.branch", "main")
	v.SetDefault("storage.github.api_url", "")
	v.SetDefault("storage.bucket.region", "")
	v.SetDefault("storage.bucket.bucket", "")
	v.SetDefault("storage.bucket.access_key", "")
	v.SetDefault("storage.bucket.secret_key", "")
	v.SetDefault("storage.bucket.endpoint", "")

	v.SetDefault("share.app_base_url", "https://arhythm.netlify.app")
	v.SetDefault("share.media_base_url", "https://hbemasterly.pythonanywhere.com/stream")

	v.SetDefault("content.slides_file", "slides.yaml")
	v.SetDefault("content.search_default_limit", 5)
	v.SetDefault("content.search_max_limit", 25)
	v.SetDefault("content.page_default_limit", 10)
	v.SetDefault("content.page_max_limit", 25)
}

// Load 加载配置
// 参数:
//   - path: 配置文件路径，文件不存在时仅使用默认值和环境变量
//
// 返回值:
//   - *Config: 配置对象
//   - error: 读取或解析失败时的错误
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate 校验关键配置项
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Auth.OTPLength <= 0 {
		return fmt.Errorf("auth.otp_length must be positive")
	}
	if c.Auth.OTPTTL <= 0 {
		return fmt.Errorf("auth.otp_ttl must be positive")
	}
	if c.Server.EnableHTTPS && (c.Server.TLSCertFile == "" || c.Server.TLSKeyFile == "") {
		return fmt.Errorf("https enabled but tls_cert_file or tls_key_file is empty")
	}
	if c.Storage.Cleanup.QueueSize <= 0 || c.Storage.Cleanup.MaxRetries < 0 {
		return fmt.Errorf("storage.cleanup.queue_size must be positive and max_retries non-negative")
	}
	if c.Storage.Cleanup.RetryInterval <= 0 {
		return fmt.Errorf("storage.cleanup.retry_interval must be positive")
	}
	if c.Content.PageMaxLimit < c.Content.PageDefaultLimit {
		return fmt.Errorf("content.page_max_limit must be >= content.page_default_limit")
	}
	return nil
}
