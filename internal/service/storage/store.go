// Package storage 提供媒体资源远程存储的访问能力
// 歌曲音频、专辑和歌手封面托管在远程存储上，本包负责删除和检查这些文件
package storage

import (
	"context"
	"fmt"

	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
)

// 支持的存储提供商
const (
	ProviderNone    = "none"
	ProviderGitHub  = "github"
	ProviderAliyun  = "aliyun"
	ProviderTencent = "tencent"
	ProviderQiniu   = "qiniu"
)

// AssetStore 远程资源存储接口
type AssetStore interface {
	// DeleteFile 删除远程文件
	// 参数:
	//   - path: 解码后的文件路径，例如 "songs-file/A01 - Song.mp3"
	//   - message: 删除说明，基于Git的存储会用作提交信息
	DeleteFile(ctx context.Context, path, message string) error

	// FileExists 检查文件是否存在
	FileExists(ctx context.Context, path string) (bool, error)

	// TestConnection 测试连接
	TestConnection(ctx context.Context) error

	// Provider 返回提供商名称
	Provider() string
}

// New 根据配置创建存储实例
func New(ctx context.Context, cfg config.StorageConfig) (AssetStore, error) {
	var (
		store AssetStore
		err   error
	)
	switch cfg.Provider {
	case ProviderNone, "":
		return NoopStore{}, nil
	case ProviderGitHub:
		store, err = asStore(NewGitHubStore(ctx, cfg.GitHub, cfg.Timeout))
	case ProviderAliyun:
		store, err = asStore(NewAliyunStore(cfg.Bucket))
	case ProviderTencent:
		store, err = asStore(NewTencentStore(cfg.Bucket, cfg.Timeout))
	case ProviderQiniu:
		store, err = asStore(NewQiniuStore(cfg.Bucket))
	default:
		return nil, errors.Of(errors.ErrStorageProviderNotSupported).WithDetails(cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// asStore 避免构造失败时返回带类型的nil接口
func asStore[T AssetStore](s T, err error) (AssetStore, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// RemoveQuietly 依次删除多个远程文件
// 单个文件删除失败只记录日志，不影响其余文件，也不向调用方返回错误
func RemoveQuietly(ctx context.Context, store AssetStore, message string, paths ...string) int {
	removed := 0
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := store.DeleteFile(ctx, p, message); err != nil {
			logger.Warnf("[%s] 删除远程文件失败: %s, 错误: %v", store.Provider(), p, err)
			continue
		}
		logger.Infof("[%s] 已删除远程文件: %s", store.Provider(), p)
		removed++
	}
	return removed
}

// NoopStore 未配置远程存储时使用，只记录日志
type NoopStore struct{}

// DeleteFile 记录删除请求
func (NoopStore) DeleteFile(_ context.Context, path, message string) error {
	logger.Debugf("[none] 跳过远程文件删除: %s (%s)", path, message)
	return nil
}

// FileExists 始终返回false
func (NoopStore) FileExists(context.Context, string) (bool, error) {
	return false, nil
}

// TestConnection 始终成功
func (NoopStore) TestConnection(context.Context) error {
	return nil
}

// Provider 返回提供商名称
func (NoopStore) Provider() string {
	return ProviderNone
}

// deleteFailed 包装删除失败的错误
func deleteFailed(provider, path string, err error) error {
	return errors.Wrap(errors.ErrStorageDeleteFailed, "", fmt.Errorf("%s: %s: %w", provider, path, err))
}
