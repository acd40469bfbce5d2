package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tencentyun/cos-go-sdk-v5"
	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
)

// TencentStore 腾讯云COS存储
type TencentStore struct {
	client *cos.Client
}

// NewTencentStore 创建腾讯云COS存储实例
func NewTencentStore(cfg config.BucketConfig, timeout time.Duration) (*TencentStore, error) {
	bucketURL := fmt.Sprintf("https://%s.cos.%s.myqcloud.com", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		bucketURL = cfg.Endpoint
	}
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorageConfigInvalid, "", err)
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Timeout: timeout,
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		},
	})

	logger.Infof("[腾讯云COS] 初始化存储: %s", bucketURL)
	return &TencentStore{client: client}, nil
}

// DeleteFile 删除对象
func (s *TencentStore) DeleteFile(ctx context.Context, path, _ string) error {
	if _, err := s.client.Object.Delete(ctx, path); err != nil {
		return deleteFailed(ProviderTencent, path, err)
	}
	return nil
}

// FileExists 检查对象是否存在
func (s *TencentStore) FileExists(ctx context.Context, path string) (bool, error) {
	if _, err := s.client.Object.Head(ctx, path, nil); err != nil {
		if cos.IsNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("check %s in tencent cos: %w", path, err)
	}
	return true, nil
}

// TestConnection 访问存储桶验证连接
func (s *TencentStore) TestConnection(ctx context.Context) error {
	if _, err := s.client.Bucket.Head(ctx); err != nil {
		return errors.Wrap(errors.ErrStorageConnectionFailed, "", err)
	}
	return nil
}

// Provider 返回提供商名称
func (s *TencentStore) Provider() string {
	return ProviderTencent
}
