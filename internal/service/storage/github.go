package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/errors"
	"github.com/weiwangfds/arsongs/internal/logger"
	"golang.org/x/oauth2"
)

// GitHubStore 基于Git仓库的文件托管
// 删除文件需要先读取文件的blob SHA，再在指定分支上提交删除
type GitHubStore struct {
	client *github.Client
	repo   string
	branch string

	ownerMu sync.Mutex
	owner   string
}

// NewGitHubStore 创建Git仓库存储实例
// 参数:
//   - cfg: 仓库配置，Owner 为空时使用令牌对应的用户
//   - timeout: 单次请求超时
func NewGitHubStore(ctx context.Context, cfg config.GitHubConfig, timeout time.Duration) (*GitHubStore, error) {
	if cfg.Repo == "" {
		return nil, errors.Of(errors.ErrStorageConfigInvalid).WithDetails("storage.github.repo is required")
	}

	var httpClient *http.Client
	if cfg.Token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	} else {
		httpClient = &http.Client{}
	}
	if timeout > 0 {
		httpClient.Timeout = timeout
	}

	client := github.NewClient(httpClient)
	if cfg.APIURL != "" {
		base := cfg.APIURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, errors.Wrap(errors.ErrStorageConfigInvalid, "", err)
		}
		client.BaseURL = u
	}

	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}

	logger.Infof("[github] 初始化存储: repo=%s branch=%s", cfg.Repo, branch)
	return &GitHubStore{
		client: client,
		owner:  cfg.Owner,
		repo:   cfg.Repo,
		branch: branch,
	}, nil
}

// resolveOwner 返回仓库所有者，未配置时查询令牌对应的用户
func (s *GitHubStore) resolveOwner(ctx context.Context) (string, error) {
	s.ownerMu.Lock()
	defer s.ownerMu.Unlock()
	if s.owner != "" {
		return s.owner, nil
	}
	user, _, err := s.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("resolve authenticated user: %w", err)
	}
	s.owner = user.GetLogin()
	return s.owner, nil
}

// DeleteFile 在配置的分支上提交删除文件
func (s *GitHubStore) DeleteFile(ctx context.Context, path, message string) error {
	owner, err := s.resolveOwner(ctx)
	if err != nil {
		return deleteFailed(ProviderGitHub, path, err)
	}

	file, _, _, err := s.client.Repositories.GetContents(ctx, owner, s.repo, path,
		&github.RepositoryContentGetOptions{Ref: s.branch})
	if err != nil {
		return deleteFailed(ProviderGitHub, path, err)
	}
	if file == nil {
		return deleteFailed(ProviderGitHub, path, fmt.Errorf("path is a directory"))
	}

	_, _, err = s.client.Repositories.DeleteFile(ctx, owner, s.repo, path, &github.RepositoryContentFileOptions{
		Message: github.String(message),
		SHA:     file.SHA,
		Branch:  github.String(s.branch),
	})
	if err != nil {
		return deleteFailed(ProviderGitHub, path, err)
	}
	return nil
}

// FileExists 检查文件是否存在于配置的分支
func (s *GitHubStore) FileExists(ctx context.Context, path string) (bool, error) {
	owner, err := s.resolveOwner(ctx)
	if err != nil {
		return false, err
	}
	file, _, resp, err := s.client.Repositories.GetContents(ctx, owner, s.repo, path,
		&github.RepositoryContentGetOptions{Ref: s.branch})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("check %s: %w", path, err)
	}
	return file != nil, nil
}

// TestConnection 读取仓库信息验证令牌和仓库配置
func (s *GitHubStore) TestConnection(ctx context.Context) error {
	owner, err := s.resolveOwner(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrStorageConnectionFailed, "", err)
	}
	if _, _, err := s.client.Repositories.Get(ctx, owner, s.repo); err != nil {
		return errors.Wrap(errors.ErrStorageConnectionFailed, "", err)
	}
	return nil
}

// Provider 返回提供商名称
func (s *GitHubStore) Provider() string {
	return ProviderGitHub
}
