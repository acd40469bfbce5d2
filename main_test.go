package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/arsongs/internal/service/storage"
)

// recordingStore 记录删除过的路径
type recordingStore struct {
	storage.NoopStore
	mu      sync.Mutex
	deleted []string
}

func (s *recordingStore) DeleteFile(_ context.Context, path, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *recordingStore) paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

// newQueue 创建一个重试间隔很长的队列，保证任务在停止前仍在排队
func newQueue(t *testing.T, store *recordingStore) *storage.CleanupQueue {
	q := storage.NewCleanupQueue(store, storage.WithRetryPolicy(1, time.Hour))
	require.NoError(t, q.Start(context.Background()))
	return q
}

// TestRunCleansUpWhenListenFails 测试服务器启动失败时仍然清空删除队列
func TestRunCleansUpWhenListenFails(t *testing.T) {
	store := &recordingStore{}
	q := newQueue(t, store)

	cleaned := 0
	cleanup := func() {
		cleaned++
		assert.NoError(t, q.Stop())
	}
	listen := func() error {
		// 启动失败前已有待删除的文件
		assert.NoError(t, q.DeleteFile(context.Background(), "songs-file/a.mp3", ""))
		return fmt.Errorf("listen tcp :8080: bind: address already in use")
	}

	err := run(&http.Server{}, listen, make(chan os.Signal), cleanup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
	assert.Equal(t, 1, cleaned)
	assert.Equal(t, []string{"songs-file/a.mp3"}, store.paths())
	assert.Zero(t, q.Pending())
}

// TestRunShutsDownOnSignal 测试收到退出信号后关闭服务器并执行清理
func TestRunShutsDownOnSignal(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	srv := &http.Server{Handler: http.NotFoundHandler()}
	quit := make(chan os.Signal, 1)
	quit <- syscall.SIGTERM

	cleaned := 0
	err = run(srv, func() error { return srv.Serve(ln) }, quit, func() { cleaned++ })
	require.NoError(t, err)
	assert.Equal(t, 1, cleaned)
}

// TestRunServerClosed 测试服务器正常关闭不视为错误
func TestRunServerClosed(t *testing.T) {
	cleaned := 0
	err := run(&http.Server{}, func() error { return http.ErrServerClosed }, make(chan os.Signal), func() { cleaned++ })
	require.NoError(t, err)
	assert.Equal(t, 1, cleaned)
}
