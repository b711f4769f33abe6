package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Region 地区表
type Region struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Region) TableName() string {
	return "region"
}

// Car 车辆表
type Car struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PlateNo   string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"plate_no"`
	Model     string    `gorm:"type:varchar(64);not null" json:"model"`
	Seats     int       `gorm:"not null" json:"seats"`
	RegionID  int64     `gorm:"index;not null" json:"region_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Car) TableName() string {
	return "car"
}

// Trip 线路表
type Trip struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(128);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	RegionID    int64           `gorm:"index;not null" json:"region_id"`
	Days        int             `gorm:"not null" json:"days"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trip) TableName() string {
	return "trip"
}

// TripPlan 班期表
// 一条线路的某次发团安排，绑定车辆并限定可售座位数
type TripPlan struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID    int64           `gorm:"index;not null" json:"trip_id"`
	CarID     int64           `gorm:"index;not null" json:"car_id"`
	StartDate time.Time       `gorm:"not null" json:"start_date"`
	Capacity  int             `gorm:"not null" json:"capacity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes     string          `gorm:"type:varchar(256)" json:"notes"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TripPlan) TableName() string {
	return "trip_plan"
}
