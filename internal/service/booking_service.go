package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"touragency/internal/config"
	"touragency/internal/model"
	"touragency/internal/repository"
	"touragency/pkg/idgen"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingService struct {
	db          *gorm.DB
	cfg         *config.Config
	bookingRepo *repository.BookingRepository
	tripRepo    *repository.TripRepository
	paymentRepo *repository.PaymentRepository
	outboxRepo  *repository.OutboxRepository
}

func NewBookingService(db *gorm.DB, cfg *config.Config) *BookingService {
	return &BookingService{
		db:          db,
		cfg:         cfg,
		bookingRepo: repository.NewBookingRepository(db),
		tripRepo:    repository.NewTripRepository(db),
		paymentRepo: repository.NewPaymentRepository(db),
		outboxRepo:  repository.NewOutboxRepository(db),
	}
}

type CreateBookingRequest struct {
	TripPlanID    int64  `json:"trip_plan_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	Seats         int    `json:"seats" binding:"required,gt=0"`
}

// CreateBooking 新建预订，校验班期存在且剩余座位充足
// 总金额 = 班期单价 × 座位数，状态从待处理开始
func (s *BookingService) CreateBooking(ctx context.Context, actor model.Actor, req *CreateBookingRequest) (*model.Booking, error) {
	if !actor.IsKnownRole() {
		return nil, model.NewUnauthorized("当前角色无权创建预订")
	}

	plan, err := s.tripRepo.GetTripPlanByID(ctx, req.TripPlanID)
	if err != nil {
		if errors.Is(err, repository.ErrTripPlanNotFound) {
			return nil, model.NewNotFound("班期不存在")
		}
		return nil, fmt.Errorf("查询班期失败: %w", err)
	}

	taken, err := s.bookingRepo.SeatsTaken(ctx, req.TripPlanID)
	if err != nil {
		return nil, fmt.Errorf("查询占座失败: %w", err)
	}
	if req.Seats > plan.Capacity-taken {
		return nil, model.NewInvalidOperation("剩余座位不足，仅剩 %d 个", plan.Capacity-taken)
	}

	booking := &model.Booking{
		BookingNo:     idgen.GenerateBookingNo(),
		TripPlanID:    req.TripPlanID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Seats:         req.Seats,
		TotalAmount:   plan.Price.Mul(decimal.NewFromInt(int64(req.Seats))),
		Status:        model.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, nil, booking); err != nil {
		return nil, fmt.Errorf("创建预订失败: %w", err)
	}

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error) {
	if !actor.IsKnownRole() {
		return nil, model.NewUnauthorized("当前角色无权查看预订")
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, model.NewNotFound("预订不存在")
		}
		return nil, fmt.Errorf("查询预订失败: %w", err)
	}
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, actor model.Actor, page, pageSize int) ([]*model.Booking, int64, error) {
	if !actor.IsKnownRole() {
		return nil, 0, model.NewUnauthorized("当前角色无权查看预订")
	}
	return s.bookingRepo.List(ctx, page, pageSize)
}

// Confirm 确认预订，仅管理员
// 事务内：状态 PENDING -> CONFIRMED，同时生成待支付款项和发件箱事件
func (s *BookingService) Confirm(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error) {
	return s.decide(ctx, actor, id, model.BookingStatusConfirmed)
}

// Deny 拒绝预订，仅管理员
func (s *BookingService) Deny(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error) {
	return s.decide(ctx, actor, id, model.BookingStatusDenied)
}

func (s *BookingService) decide(ctx context.Context, actor model.Actor, id int64, toStatus string) (*model.Booking, error) {
	if actor.Role != model.RoleAdmin {
		return nil, model.NewUnauthorized("只有管理员可以处理预订")
	}

	booking, err := s.GetBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !model.BookingCanTransition(booking.Status, toStatus) {
		return nil, model.NewInvalidOperation("预订当前状态 %s 不允许流转到 %s", booking.Status, toStatus)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.bookingRepo.UpdateStatus(ctx, tx, id, booking.Status, toStatus); err != nil {
			if errors.Is(err, repository.ErrBookingStatusInvalid) {
				return model.NewInvalidOperation("预订状态已变更，请刷新后重试")
			}
			return fmt.Errorf("更新预订状态失败: %w", err)
		}

		if toStatus != model.BookingStatusConfirmed {
			return nil
		}

		payment := &model.Payment{
			BookingID:  id,
			Status:     model.PaymentStatusPending,
			AmountDue:  booking.TotalAmount,
			AmountPaid: decimal.Zero,
		}
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("创建款项失败: %w", err)
		}

		msgPayload := map[string]interface{}{
			"booking_no": booking.BookingNo,
			"booking_id": id,
			"payment_id": payment.ID,
			"amount_due": booking.TotalAmount.String(),
			"status":     toStatus,
			"decided_at": time.Now().Format(time.RFC3339),
		}
		payloadBytes, _ := json.Marshal(msgPayload)

		event := &model.OutboxEvent{
			EventKey: booking.BookingNo,
			Topic:    s.cfg.Kafka.Topic.BookingResult,
			Payload:  string(payloadBytes),
			Status:   model.OutboxStatusPending,
		}
		if err := s.outboxRepo.Create(ctx, tx, event); err != nil {
			return fmt.Errorf("写入事件失败: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Printf("预订处理: bookingNo=%s, %s -> %s, actor=%d",
		booking.BookingNo, booking.Status, toStatus, actor.EmployeeID)

	booking.Status = toStatus
	return booking, nil
}
