package job

import (
	"context"
	"log"
	"time"

	"touragency/internal/config"
	"touragency/internal/infrastructure/mq"
	"touragency/internal/model"
	"touragency/internal/repository"

	"gorm.io/gorm"
)

// OutboxSender 发件箱投递任务
// 周期性扫描待投递事件并发往 Kafka，超过最大重试次数的标记为失败
type OutboxSender struct {
	db         *gorm.DB
	outboxRepo *repository.OutboxRepository
	cfg        *config.Config
	stopCh     chan struct{}
	interval   time.Duration
	batchSize  int
}

func NewOutboxSender(db *gorm.DB, cfg *config.Config) *OutboxSender {
	return &OutboxSender{
		db:         db,
		outboxRepo: repository.NewOutboxRepository(db),
		cfg:        cfg,
		stopCh:     make(chan struct{}),
		interval:   100 * time.Millisecond,
		batchSize:  100,
	}
}

func (s *OutboxSender) Start(ctx context.Context) {
	log.Println("[OutboxSender] 事件投递任务启动")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[OutboxSender] 收到停止信号，任务退出")
			return
		case <-s.stopCh:
			log.Println("[OutboxSender] 任务停止")
			return
		case <-ticker.C:
			s.processPendingEvents(ctx)
		}
	}
}

func (s *OutboxSender) Stop() {
	close(s.stopCh)
}

func (s *OutboxSender) processPendingEvents(ctx context.Context) {
	events, err := s.outboxRepo.GetPendingEvents(ctx, s.batchSize)
	if err != nil {
		log.Printf("[OutboxSender] 查询事件失败: %v", err)
		return
	}

	for _, event := range events {
		s.sendEvent(ctx, event)
	}
}

func (s *OutboxSender) sendEvent(ctx context.Context, event *model.OutboxEvent) {
	err := mq.SendMessage(event.Topic, event.EventKey, event.Payload)

	if err == nil {
		if updateErr := s.outboxRepo.UpdateStatus(ctx, event.ID, model.OutboxStatusSent); updateErr != nil {
			log.Printf("[OutboxSender] 更新事件状态失败: id=%d, err=%v", event.ID, updateErr)
		} else {
			log.Printf("[OutboxSender] 事件投递成功: id=%d, topic=%s, key=%s", event.ID, event.Topic, event.EventKey)
		}
		return
	}

	log.Printf("[OutboxSender] 事件投递失败: id=%d, err=%v", event.ID, err)

	if event.RetryCount+1 >= s.cfg.Business.MaxRetryCount {
		if err := s.outboxRepo.MarkAsFailed(ctx, event.ID); err != nil {
			log.Printf("[OutboxSender] 标记事件失败状态失败: id=%d, err=%v", event.ID, err)
		} else {
			log.Printf("[OutboxSender] 事件超过最大重试次数，标记为失败: id=%d", event.ID)
		}
		return
	}

	if err := s.outboxRepo.IncrementRetryCount(ctx, event.ID); err != nil {
		log.Printf("[OutboxSender] 增加重试次数失败: id=%d, err=%v", event.ID, err)
	}
}
