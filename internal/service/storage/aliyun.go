package storage

import (
	"context"
	"fmt"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
)

// AliyunStore 阿里云OSS存储
type AliyunStore struct {
	client *oss.Client
	bucket *oss.Bucket
	name   string
}

// NewAliyunStore 创建阿里云OSS存储实例
// Endpoint 为空时根据区域生成默认域名
func NewAliyunStore(cfg config.BucketConfig) (*AliyunStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.Of(errors.ErrStorageConfigInvalid).WithDetails("storage.bucket.bucket is required")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://oss-%s.aliyuncs.com", cfg.Region)
	}

	client, err := oss.New(endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorageConnectionFailed, "", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorageConnectionFailed, "", err)
	}

	logger.Infof("[阿里云OSS] 初始化存储: endpoint=%s bucket=%s", endpoint, cfg.Bucket)
	return &AliyunStore{client: client, bucket: bucket, name: cfg.Bucket}, nil
}

// DeleteFile 删除对象
func (s *AliyunStore) DeleteFile(_ context.Context, path, _ string) error {
	if err := s.bucket.DeleteObject(path); err != nil {
		return deleteFailed(ProviderAliyun, path, err)
	}
	return nil
}

// FileExists 检查对象是否存在
func (s *AliyunStore) FileExists(_ context.Context, path string) (bool, error) {
	exists, err := s.bucket.IsObjectExist(path)
	if err != nil {
		return false, fmt.Errorf("check %s in aliyun oss: %w", path, err)
	}
	return exists, nil
}

// TestConnection 获取存储桶信息验证连接
func (s *AliyunStore) TestConnection(context.Context) error {
	if _, err := s.client.GetBucketInfo(s.name); err != nil {
		return errors.Wrap(errors.ErrStorageConnectionFailed, "", err)
	}
	return nil
}

// Provider 返回提供商名称
func (s *AliyunStore) Provider() string {
	return ProviderAliyun
}
