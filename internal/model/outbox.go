package model

import (
	"time"
)

const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
	OutboxStatusFailed  = "FAILED"
)

// OutboxEvent 事务性发件箱
// 业务事务内落库，由后台任务异步投递到 Kafka，保证事件不丢
type OutboxEvent struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EventKey   string    `gorm:"type:varchar(64);not null" json:"event_key"`
	Topic      string    `gorm:"type:varchar(64);not null" json:"topic"`
	Payload    string    `gorm:"type:text;not null" json:"payload"`
	Status     string    `gorm:"type:varchar(20);index;not null;default:PENDING" json:"status"`
	RetryCount int       `gorm:"not null;default:0" json:"retry_count"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OutboxEvent) TableName() string {
	return "outbox_event"
}
