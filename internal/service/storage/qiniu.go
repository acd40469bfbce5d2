package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/qiniu/go-sdk/v7/auth/qbox"
	"github.com/qiniu/go-sdk/v7/storage"
	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
)

// QiniuStore 七牛云Kodo存储
type QiniuStore struct {
	manager *storage.BucketManager
	bucket  string
}

// NewQiniuStore 创建七牛云Kodo存储实例
// 配置了区域ID时直接使用，否则按存储桶查询区域
func NewQiniuStore(cfg config.BucketConfig) (*QiniuStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.Of(errors.ErrStorageConfigInvalid).WithDetails("storage.bucket.bucket is required")
	}
	mac := qbox.NewMac(cfg.AccessKey, cfg.SecretKey)

	var region *storage.Region
	if cfg.Region != "" {
		r, ok := storage.GetRegionByID(storage.RegionID(cfg.Region))
		if !ok {
			return nil, errors.Of(errors.ErrStorageConfigInvalid).WithDetails("unknown qiniu region: " + cfg.Region)
		}
		region = &r
	} else {
		r, err := storage.GetRegion(cfg.AccessKey, cfg.Bucket)
		if err != nil {
			return nil, errors.Wrap(errors.ErrStorageConnectionFailed, "", err)
		}
		region = r
	}

	logger.Infof("[七牛云Kodo] 初始化存储: bucket=%s", cfg.Bucket)
	return &QiniuStore{
		manager: storage.NewBucketManager(mac, &storage.Config{Region: region, UseHTTPS: true}),
		bucket:  cfg.Bucket,
	}, nil
}

// DeleteFile 删除对象
func (s *QiniuStore) DeleteFile(_ context.Context, path, _ string) error {
	if err := s.manager.Delete(s.bucket, path); err != nil {
		return deleteFailed(ProviderQiniu, path, err)
	}
	return nil
}

// FileExists 检查对象是否存在
func (s *QiniuStore) FileExists(_ context.Context, path string) (bool, error) {
	if _, err := s.manager.Stat(s.bucket, path); err != nil {
		if strings.Contains(err.Error(), "no such file or directory") {
			return false, nil
		}
		return false, fmt.Errorf("check %s in qiniu kodo: %w", path, err)
	}
	return true, nil
}

// TestConnection 列出一个对象验证连接
func (s *QiniuStore) TestConnection(context.Context) error {
	if _, _, _, _, err := s.manager.ListFiles(s.bucket, "", "", "", 1); err != nil {
		return errors.Wrap(errors.ErrStorageConnectionFailed, "", err)
	}
	return nil
}

// Provider 返回提供商名称
func (s *QiniuStore) Provider() string {
	return ProviderQiniu
}
