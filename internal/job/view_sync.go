package job

import (
	"context"
	"log"
	"time"

	"touragency/internal/config"
	"touragency/internal/infrastructure/cache"
	"touragency/internal/repository"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ViewSyncJob 浏览数回写任务
// 文章读取只在 Redis 上计数，这里周期性取走增量并批量累加到 MySQL，
// 避免每次读取都打一条 UPDATE
type ViewSyncJob struct {
	db          *gorm.DB
	redisClient *redis.Client
	postRepo    *repository.PostRepository
	stopCh      chan struct{}
	interval    time.Duration
}

func NewViewSyncJob(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *ViewSyncJob {
	interval := time.Duration(cfg.Business.ViewSyncSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &ViewSyncJob{
		db:          db,
		redisClient: redisClient,
		postRepo:    repository.NewPostRepository(db),
		stopCh:      make(chan struct{}),
		interval:    interval,
	}
}

func (j *ViewSyncJob) Start(ctx context.Context) {
	log.Println("[ViewSyncJob] 浏览数回写任务启动")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[ViewSyncJob] 收到停止信号，任务退出")
			return
		case <-j.stopCh:
			log.Println("[ViewSyncJob] 任务停止")
			return
		case <-ticker.C:
			j.flush(ctx)
		}
	}
}

func (j *ViewSyncJob) Stop() {
	close(j.stopCh)
}

func (j *ViewSyncJob) flush(ctx context.Context) {
	deltas, err := cache.DrainPostViews(ctx, j.redisClient)
	if err != nil {
		log.Printf("[ViewSyncJob] 读取浏览数增量失败: %v", err)
		return
	}

	for postID, delta := range deltas {
		if err := j.postRepo.IncrementViews(ctx, postID, delta); err != nil {
			log.Printf("[ViewSyncJob] 回写浏览数失败: postID=%d, delta=%d, err=%v", postID, delta, err)
		}
	}

	if len(deltas) > 0 {
		log.Printf("[ViewSyncJob] 回写完成: %d 篇文章", len(deltas))
	}
}
