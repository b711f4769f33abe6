package repository

import (
	"context"
	"errors"

	"touragency/internal/model"

	"gorm.io/gorm"
)

var (
	ErrBookingNotFound      = errors.New("预订不存在")
	ErrBookingStatusInvalid = errors.New("预订状态不合法")
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *model.Booking) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) GetByBookingNo(ctx context.Context, bookingNo string) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).Where("booking_no = ?", bookingNo).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus 条件更新预订状态
// WHERE 带上 fromStatus，RowsAffected 为 0 说明状态已被并发改走
func (r *BookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id int64, fromStatus, toStatus string) error {
	if !model.BookingCanTransition(fromStatus, toStatus) {
		return ErrBookingStatusInvalid
	}

	if tx == nil {
		tx = r.db
	}

	result := tx.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrBookingStatusInvalid
	}

	return nil
}

// SeatsTaken 某班期已占用的座位数（待处理和已确认都算占位）
func (r *BookingRepository) SeatsTaken(ctx context.Context, tripPlanID int64) (int, error) {
	var taken int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("trip_plan_id = ? AND status <> ?", tripPlanID, model.BookingStatusDenied).
		Select("COALESCE(SUM(seats), 0)").
		Scan(&taken).Error
	return int(taken), err
}

func (r *BookingRepository) List(ctx context.Context, page, pageSize int) ([]*model.Booking, int64, error) {
	var bookings []*model.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Booking{})

	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&bookings).Error

	return bookings, total, err
}
