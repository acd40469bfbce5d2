package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore 前 failures[path] 次删除失败
type flakyStore struct {
	mu       sync.Mutex
	failures map[string]int
	calls    map[string]int
	deleted  []string
}

func newFlakyStore(failures map[string]int) *flakyStore {
	return &flakyStore{failures: failures, calls: map[string]int{}}
}

func (s *flakyStore) DeleteFile(_ context.Context, path, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[path]++
	if s.calls[path] <= s.failures[path] {
		return fmt.Errorf("temporary failure %d", s.calls[path])
	}
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *flakyStore) FileExists(context.Context, string) (bool, error) { return true, nil }
func (s *flakyStore) TestConnection(context.Context) error             { return nil }
func (s *flakyStore) Provider() string                                 { return "flaky" }

func (s *flakyStore) callCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func (s *flakyStore) deletedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

// TestCleanupQueueRetries 测试失败任务按退避重试直到成功或放弃
func TestCleanupQueueRetries(t *testing.T) {
	store := newFlakyStore(map[string]int{
		"songs-file/retry.mp3": 2,
		"songs-file/never.mp3": 100,
	})
	q := NewCleanupQueue(store, WithRetryPolicy(2, 5*time.Millisecond))
	require.NoError(t, q.Start(context.Background()))
	defer q.Stop()

	var _ AssetStore = q
	assert.Equal(t, "flaky", q.Provider())

	removed := RemoveQuietly(context.Background(), q, "cleanup",
		"songs-file/ok.mp3", "songs-file/retry.mp3", "songs-file/never.mp3")
	assert.Equal(t, 3, removed)

	require.Eventually(t, func() bool { return q.Pending() == 0 }, 3*time.Second, 5*time.Millisecond)

	assert.ElementsMatch(t, []string{"songs-file/ok.mp3", "songs-file/retry.mp3"}, store.deletedPaths())
	assert.Equal(t, 3, store.callCount("songs-file/retry.mp3"))
	// 首次尝试加两次重试
	assert.Equal(t, 3, store.callCount("songs-file/never.mp3"))
}

// TestCleanupQueueFull 测试队列已满时拒绝新任务
func TestCleanupQueueFull(t *testing.T) {
	store := newFlakyStore(nil)
	q := NewCleanupQueue(store, WithQueueSize(1))

	require.NoError(t, q.DeleteFile(context.Background(), "a.png", ""))
	assert.Error(t, q.DeleteFile(context.Background(), "b.png", ""))
	assert.Equal(t, 1, q.Pending())

	// 未启动的队列在停止时不处理任务
	require.NoError(t, q.Stop())
	assert.Empty(t, store.deletedPaths())
}

// TestCleanupQueueStopDrains 测试停止时处理剩余任务
func TestCleanupQueueStopDrains(t *testing.T) {
	store := newFlakyStore(nil)
	q := NewCleanupQueue(store, WithRetryPolicy(1, time.Hour))
	require.NoError(t, q.Start(context.Background()))
	assert.Error(t, q.Start(context.Background()))

	for i := 0; i < 5; i++ {
		require.NoError(t, q.DeleteFile(context.Background(), fmt.Sprintf("f%d.png", i), ""))
	}
	require.NoError(t, q.Stop())
	require.NoError(t, q.Stop())

	assert.Len(t, store.deletedPaths(), 5)
	assert.Zero(t, q.Pending())
}

// TestTakeDue 测试只取出到期的重试任务
func TestTakeDue(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := NewCleanupQueue(NoopStore{})
	q.retries = []*cleanupJob{
		{path: "a", nextRetry: now.Add(-time.Second)},
		{path: "b", nextRetry: now.Add(time.Minute)},
		{path: "c", nextRetry: now},
	}

	due := q.takeDue(now)
	require.Len(t, due, 2)
	assert.Equal(t, "a", due[0].path)
	assert.Equal(t, "c", due[1].path)
	require.Len(t, q.retries, 1)
	assert.Equal(t, "b", q.retries[0].path)
}
