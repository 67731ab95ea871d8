package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxRetries   = 3
	defaultBaseDelay    = 5 * time.Second
	defaultQueueTimeout = 5 * time.Second
)

// RedisQueue implements Queue on top of a redis list (immediate tasks), a
// sorted set (delayed tasks) and a processing list. Delivery is at-least-once.
type RedisQueue struct {
	client          *redis.Client
	mainQueue       string
	delayedQueue    string
	processingQueue string
	retryManager    *RetryManager
	dlqHandler      DLQHandler
	config          *RedisQueueConfig
	mu              sync.Mutex
	stopChan        chan struct{}
	wg              sync.WaitGroup
}

type RedisQueueConfig struct {
	MainQueue       string
	DelayedQueue    string
	ProcessingQueue string
	DLQ             string

	MaxRetries   int
	BaseDelay    time.Duration
	QueueTimeout time.Duration
	EnableDLQ    bool
}

func DefaultRedisQueueConfig() *RedisQueueConfig {
	return &RedisQueueConfig{
		MainQueue:       "subtrack:tasks",
		DelayedQueue:    "subtrack:tasks:delayed",
		ProcessingQueue: "subtrack:tasks:processing",
		DLQ:             "subtrack:dlq",
		MaxRetries:      defaultMaxRetries,
		BaseDelay:       defaultBaseDelay,
		QueueTimeout:    defaultQueueTimeout,
		EnableDLQ:       true,
	}
}

func NewRedisQueue(client *redis.Client, cfg *RedisQueueConfig, retryManager *RetryManager, dlqHandler DLQHandler) (*RedisQueue, error) {
	if cfg == nil {
		cfg = DefaultRedisQueueConfig()
	}
	if retryManager == nil {
		retryManager = NewRetryManager(cfg.MaxRetries, cfg.BaseDelay)
	}
	if dlqHandler == nil && cfg.EnableDLQ {
		dlqHandler = NewDefaultDLQHandler(client, cfg.DLQ)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	q := &RedisQueue{
		client:          client,
		mainQueue:       cfg.MainQueue,
		delayedQueue:    cfg.DelayedQueue,
		processingQueue: cfg.ProcessingQueue,
		retryManager:    retryManager,
		dlqHandler:      dlqHandler,
		config:          cfg,
		stopChan:        make(chan struct{}),
	}

	logrus.Infof("RedisQueue initialized: main=%s, delayed=%s, dlq=%s",
		cfg.MainQueue, cfg.DelayedQueue, cfg.DLQ)
	return q, nil
}

func (r *RedisQueue) Publish(ctx context.Context, task *Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Type == "" {
		return fmt.Errorf("invalid task: type is required")
	}
	if task.MaxRetries <= 0 {
		task.MaxRetries = r.config.MaxRetries
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	taskData, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if !task.ExecuteAt.IsZero() && task.ExecuteAt.After(time.Now()) {
		score := float64(task.ExecuteAt.UnixNano()) / 1e9
		if err := r.client.ZAdd(ctx, r.delayedQueue, &redis.Z{
			Score:  score,
			Member: taskData,
		}).Err(); err != nil {
			return fmt.Errorf("failed to publish delayed task: %w", err)
		}
		logrus.Debugf("Task %s scheduled for %s", task.ID, task.ExecuteAt.Format(time.RFC3339))
		return nil
	}

	if err := r.client.LPush(ctx, r.mainQueue, taskData).Err(); err != nil {
		return fmt.Errorf("failed to publish task: %w", err)
	}
	logrus.Debugf("Task %s published to main queue", task.ID)
	return nil
}

func (r *RedisQueue) Subscribe(ctx context.Context, handler func(*Task) error) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	r.wg.Add(2)
	go r.processDelayedTasks(ctx)
	go r.processMainQueue(ctx, handler)

	logrus.Info("RedisQueue subscriber started")
	return nil
}

func (r *RedisQueue) Close() error {
	close(r.stopChan)
	r.wg.Wait()
	return nil
}

func (r *RedisQueue) processMainQueue(ctx context.Context, handler func(*Task) error) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		default:
			if err := r.processNext(ctx, handler); err != nil {
				logrus.Errorf("Error processing queue: %v", err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (r *RedisQueue) processNext(ctx context.Context, handler func(*Task) error) error {
	// Atomic move to the processing list so a crash cannot lose the task.
	taskData, err := r.client.BRPopLPush(ctx, r.mainQueue, r.processingQueue, r.config.QueueTimeout).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to move task to processing queue: %w", err)
	}

	var task Task
	if err := json.Unmarshal([]byte(taskData), &task); err != nil {
		logrus.Errorf("Dropping unparseable task: %v", err)
	} else if err := r.executeWithRetry(ctx, &task, handler); err != nil {
		logrus.Errorf("Task %s failed after %d attempts: %v", task.ID, task.Attempts, err)
		if r.dlqHandler != nil {
			r.dlqHandler.HandleFailedTask(&task, err)
		}
	}

	if err := r.client.LRem(ctx, r.processingQueue, 1, taskData).Err(); err != nil {
		logrus.Errorf("Failed to remove task from processing queue: %v", err)
	}
	return nil
}

func (r *RedisQueue) processDelayedTasks(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		case <-ticker.C:
			if err := r.moveReadyDelayedTasks(ctx); err != nil {
				logrus.Errorf("Failed to process delayed tasks: %v", err)
			}
		}
	}
}

func (r *RedisQueue) moveReadyDelayedTasks(ctx context.Context) error {
	now := float64(time.Now().UnixNano()) / 1e9
	max := fmt.Sprintf("%f", now)

	tasks, err := r.client.ZRangeByScore(ctx, r.delayedQueue, &redis.ZRangeBy{
		Min: "0",
		Max: max,
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to get delayed tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, taskData := range tasks {
		pipe.LPush(ctx, r.mainQueue, taskData)
	}
	pipe.ZRemRangeByScore(ctx, r.delayedQueue, "0", max)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to move delayed tasks: %w", err)
	}

	logrus.Debugf("Moved %d delayed tasks to main queue", len(tasks))
	return nil
}

func (r *RedisQueue) executeWithRetry(ctx context.Context, task *Task, handler func(*Task) error) error {
	for {
		task.Attempts++

		err := handler(task)
		if err == nil {
			return nil
		}

		shouldRetry, delay := r.retryManager.ShouldRetry(task, err)
		if !shouldRetry {
			return err
		}

		logrus.Warnf("Task %s failed (attempt %d/%d), retrying in %v: %v",
			task.ID, task.Attempts, task.MaxRetries, delay, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
