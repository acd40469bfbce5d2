package storage

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/weiwangfds/arsongs/internal/logger"
)

// 清理队列默认参数
const (
	defaultQueueSize        = 100
	defaultMaxRetries       = 5
	defaultMinRetryInterval = 30 * time.Second
)

// cleanupJob 待删除的远程文件
type cleanupJob struct {
	path      string
	message   string
	attempts  int       // 已失败次数
	nextRetry time.Time // 下次重试时间
}

// CleanupQueue 异步删除远程文件的队列
// 实现 AssetStore：DeleteFile 只把任务放入队列并立即返回，
// 由后台协程调用底层存储删除，失败的任务按指数退避重试。
// 只有一个删除协程，基于Git的存储因此不会产生并发提交冲突
type CleanupQueue struct {
	store            AssetStore
	jobs             chan *cleanupJob
	stopChan         chan struct{}
	wg               sync.WaitGroup
	mu               sync.Mutex // 保护 isRunning 和 retries
	isRunning        bool
	retries          []*cleanupJob
	pending          atomic.Int64
	maxRetries       int
	minRetryInterval time.Duration
	now              func() time.Time
}

// CleanupOption 清理队列选项
type CleanupOption func(*CleanupQueue)

// WithRetryPolicy 设置最大重试次数和最小重试间隔
func WithRetryPolicy(maxRetries int, minInterval time.Duration) CleanupOption {
	return func(q *CleanupQueue) {
		q.maxRetries = maxRetries
		q.minRetryInterval = minInterval
	}
}

// WithQueueSize 设置队列容量
func WithQueueSize(size int) CleanupOption {
	return func(q *CleanupQueue) {
		q.jobs = make(chan *cleanupJob, size)
	}
}

// NewCleanupQueue 创建清理队列
// 参数:
//   - store: 实际执行删除的存储
//   - opts: 重试策略、队列容量等选项
func NewCleanupQueue(store AssetStore, opts ...CleanupOption) *CleanupQueue {
	q := &CleanupQueue{
		store:            store,
		jobs:             make(chan *cleanupJob, defaultQueueSize),
		stopChan:         make(chan struct{}),
		maxRetries:       defaultMaxRetries,
		minRetryInterval: defaultMinRetryInterval,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	logger.Infof("[远程文件清理] 初始化清理队列，容量: %d, 最大重试次数: %d, 最小间隔: %v",
		cap(q.jobs), q.maxRetries, q.minRetryInterval)
	return q
}

// Start 启动删除协程和重试协程
func (q *CleanupQueue) Start(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.isRunning {
		return fmt.Errorf("cleanup queue is already running")
	}
	q.isRunning = true

	q.wg.Add(2)
	go q.deleteWorker(ctx)
	go q.retryWorker(ctx)
	logger.Infof("[远程文件清理] 清理队列已启动: provider=%s", q.store.Provider())
	return nil
}

// Stop 停止后台协程
// 队列中尚未处理的任务会各尝试一次，等待重试的任务被放弃
func (q *CleanupQueue) Stop() error {
	q.mu.Lock()
	if !q.isRunning {
		q.mu.Unlock()
		return nil
	}
	q.isRunning = false
	q.mu.Unlock()

	close(q.stopChan)
	q.wg.Wait()

	q.mu.Lock()
	abandoned := len(q.retries)
	q.retries = nil
	q.mu.Unlock()
	if abandoned > 0 {
		logger.Warnf("[远程文件清理] 清理队列已停止，放弃 %d 个待重试任务", abandoned)
	}
	logger.Infof("[远程文件清理] 清理队列已停止")
	return nil
}

// DeleteFile 将删除任务放入队列，队列已满时返回错误
func (q *CleanupQueue) DeleteFile(_ context.Context, path, message string) error {
	job := &cleanupJob{path: path, message: message}
	q.pending.Add(1)
	select {
	case q.jobs <- job:
		return nil
	default:
		q.pending.Add(-1)
		return fmt.Errorf("cleanup queue is full, dropping %s", path)
	}
}

// FileExists 直接查询底层存储
func (q *CleanupQueue) FileExists(ctx context.Context, path string) (bool, error) {
	return q.store.FileExists(ctx, path)
}

// TestConnection 直接测试底层存储
func (q *CleanupQueue) TestConnection(ctx context.Context) error {
	return q.store.TestConnection(ctx)
}

// Provider 返回底层存储的提供商名称
func (q *CleanupQueue) Provider() string {
	return q.store.Provider()
}

// Pending 返回尚未完成（排队、处理中或等待重试）的任务数
func (q *CleanupQueue) Pending() int {
	return int(q.pending.Load())
}

func (q *CleanupQueue) deleteWorker(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.stopChan:
			q.drain()
			return
		case job := <-q.jobs:
			q.process(ctx, job)
		}
	}
}

// drain 停止前处理队列中剩余的任务，每个任务只尝试一次
func (q *CleanupQueue) drain() {
	ctx := context.Background()
	for {
		select {
		case job := <-q.jobs:
			if err := q.store.DeleteFile(ctx, job.path, job.message); err != nil {
				logger.Warnf("[远程文件清理] 停止前删除失败: %s, 错误: %v", job.path, err)
			}
			q.pending.Add(-1)
		default:
			return
		}
	}
}

func (q *CleanupQueue) process(ctx context.Context, job *cleanupJob) {
	err := q.store.DeleteFile(ctx, job.path, job.message)
	if err == nil {
		logger.Infof("[远程文件清理] [%s] 已删除远程文件: %s", q.store.Provider(), job.path)
		q.pending.Add(-1)
		return
	}

	job.attempts++
	if job.attempts > q.maxRetries {
		logger.Errorf("[远程文件清理] [%s] 已达到最大重试次数 (%d)，放弃删除: %s, 错误: %v",
			q.store.Provider(), q.maxRetries, job.path, err)
		q.pending.Add(-1)
		return
	}

	// 指数退避：第n次失败后等待 n² 倍最小间隔
	backoff := time.Duration(job.attempts*job.attempts) * q.minRetryInterval
	job.nextRetry = q.now().Add(backoff)
	logger.Warnf("[远程文件清理] [%s] 删除失败，%v 后重试 (%d/%d): %s, 错误: %v",
		q.store.Provider(), backoff, job.attempts, q.maxRetries, job.path, err)

	q.mu.Lock()
	q.retries = append(q.retries, job)
	q.mu.Unlock()
}

func (q *CleanupQueue) retryWorker(ctx context.Context) {
	defer q.wg.Done()

	ticker := time.NewTicker(q.minRetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.stopChan:
			return
		case <-ticker.C:
			for _, job := range q.takeDue(q.now()) {
				select {
				case q.jobs <- job:
				default:
					// 队列已满，下次再试
					q.mu.Lock()
					q.retries = append(q.retries, job)
					q.mu.Unlock()
				}
			}
		}
	}
}

// takeDue 取出所有已到重试时间的任务
func (q *CleanupQueue) takeDue(now time.Time) []*cleanupJob {
	q.mu.Lock()
	defer q.mu.Unlock()

	var due []*cleanupJob
	remaining := q.retries[:0]
	for _, job := range q.retries {
		if !job.nextRetry.After(now) {
			due = append(due, job)
		} else {
			remaining = append(remaining, job)
		}
	}
	q.retries = remaining
	return due
}
