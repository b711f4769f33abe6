package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"touragency/internal/config"
	"touragency/internal/infrastructure/lock"
	"touragency/internal/model"
	"touragency/internal/repository"
	"touragency/pkg/idgen"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService struct {
	db              *gorm.DB
	redisClient     *redis.Client
	cfg             *config.Config
	paymentRepo     *repository.PaymentRepository
	transactionRepo *repository.TransactionRepository
	catalogRepo     *repository.CatalogRepository
	outboxRepo      *repository.OutboxRepository
}

func NewPaymentService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *PaymentService {
	return &PaymentService{
		db:              db,
		redisClient:     redisClient,
		cfg:             cfg,
		paymentRepo:     repository.NewPaymentRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		catalogRepo:     repository.NewCatalogRepository(db),
		outboxRepo:      repository.NewOutboxRepository(db),
	}
}

type CreateTransactionRequest struct {
	Type            string          `json:"type" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethodID int64           `json:"payment_method_id" binding:"required"`
	Notes           string          `json:"notes"`
}

func (s *PaymentService) GetPayment(ctx context.Context, actor model.Actor, id int64) (*model.Payment, error) {
	if !actor.IsKnownRole() {
		return nil, model.NewUnauthorized("当前角色无权查看款项")
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, model.NewNotFound("款项不存在")
		}
		return nil, fmt.Errorf("查询款项失败: %w", err)
	}
	return payment, nil
}

func (s *PaymentService) ListPaymentsByBooking(ctx context.Context, actor model.Actor, bookingID int64) ([]*model.Payment, error) {
	if !actor.IsKnownRole() {
		return nil, model.NewUnauthorized("当前角色无权查看款项")
	}
	return s.paymentRepo.ListByBookingID(ctx, bookingID)
}

// ListTransactions 查询某笔款项的全部流水，按交易时间升序
// 纯读操作，两次查询之间没有写入时结果完全一致
func (s *PaymentService) ListTransactions(ctx context.Context, actor model.Actor, paymentID int64) ([]model.PaymentTransaction, error) {
	if !actor.IsKnownRole() {
		return nil, model.NewUnauthorized("当前角色无权查看流水")
	}

	if _, err := s.GetPayment(ctx, actor, paymentID); err != nil {
		return nil, err
	}

	return s.transactionRepo.ListByPaymentID(ctx, paymentID)
}

// CreateTransaction 为款项新增一笔流水
//
// 流程：按款项加分布式锁 -> 锁内重读款项与流水 -> 业务规则校验 ->
// 事务内写流水、刷新款项、落发件箱事件。校验不通过时整个操作
// 无任何副作用。并发绕过锁的极端情况由流水表唯一索引在提交阶段拦截。
func (s *PaymentService) CreateTransaction(ctx context.Context, actor model.Actor, paymentID int64, req *CreateTransactionRequest) (*model.PaymentTransaction, error) {
	if !actor.IsKnownRole() {
		return nil, model.NewUnauthorized("当前角色无权录入流水")
	}

	if !req.Amount.IsPositive() {
		return nil, model.NewValidation("流水金额必须大于 0")
	}

	if _, err := s.catalogRepo.GetPaymentMethodByID(ctx, req.PaymentMethodID); err != nil {
		if errors.Is(err, repository.ErrPaymentMethodNotFound) {
			return nil, model.NewNotFound("支付方式不存在")
		}
		return nil, fmt.Errorf("查询支付方式失败: %w", err)
	}

	payLock := lock.NewPaymentLock(s.redisClient, paymentID, uuid.NewString())
	if err := payLock.Lock(ctx, 100*time.Millisecond, 30); err != nil {
		return nil, fmt.Errorf("系统繁忙，请稍后重试: %w", err)
	}
	defer payLock.Unlock(ctx)

	// 锁内重读，校验基于最新快照
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, model.NewNotFound("款项不存在")
		}
		return nil, fmt.Errorf("查询款项失败: %w", err)
	}

	existing, err := s.transactionRepo.ListByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("查询流水失败: %w", err)
	}

	if err := model.ValidateTransaction(payment, existing, req.Type, req.Amount); err != nil {
		return nil, err
	}

	now := time.Now()
	transaction := &model.PaymentTransaction{
		TransactionNo:   idgen.GenerateTransactionNo(),
		PaymentID:       paymentID,
		PaymentMethodID: req.PaymentMethodID,
		TransactionDate: now,
		Type:            req.Type,
		Amount:          req.Amount,
		Notes:           req.Notes,
	}

	netPaidAfter := model.NetPaid(append(existing, *transaction))
	nextStatus := model.NextPaymentStatus(payment, req.Type, netPaidAfter)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.transactionRepo.Create(ctx, tx, transaction); err != nil {
			return fmt.Errorf("写入流水失败: %w", err)
		}

		if err := s.paymentRepo.UpdateAfterTransaction(ctx, tx, paymentID, netPaidAfter, nextStatus, now); err != nil {
			return fmt.Errorf("刷新款项失败: %w", err)
		}

		msgPayload := map[string]interface{}{
			"transaction_no": transaction.TransactionNo,
			"payment_id":     paymentID,
			"booking_id":     payment.BookingID,
			"type":           req.Type,
			"amount":         req.Amount.String(),
			"net_paid":       netPaidAfter.String(),
			"status":         nextStatus,
			"recorded_at":    now.Format(time.RFC3339),
		}
		payloadBytes, _ := json.Marshal(msgPayload)

		event := &model.OutboxEvent{
			EventKey: transaction.TransactionNo,
			Topic:    s.cfg.Kafka.Topic.PaymentResult,
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

	log.Printf("流水入账: transactionNo=%s, paymentID=%d, type=%s, amount=%s",
		transaction.TransactionNo, paymentID, req.Type, req.Amount)

	return transaction, nil
}
