package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusDenied    = "DENIED"
)

// 预订状态流转表，确认/拒绝都只能从待处理出发
var bookingTransitions = map[string][]string{
	BookingStatusPending: {BookingStatusConfirmed, BookingStatusDenied},
}

// BookingCanTransition 预订状态能否从 from 流转到 to
func BookingCanTransition(from, to string) bool {
	for _, s := range bookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Booking 预订表
type Booking struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingNo     string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"booking_no"`
	TripPlanID    int64           `gorm:"index;not null" json:"trip_plan_id"`
	CustomerName  string          `gorm:"type:varchar(64);not null" json:"customer_name"`
	CustomerPhone string          `gorm:"type:varchar(32);not null" json:"customer_phone"`
	Seats         int             `gorm:"not null" json:"seats"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status        string          `gorm:"type:varchar(20);index;not null;default:PENDING" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string {
	return "booking"
}
