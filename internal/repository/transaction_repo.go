package repository

import (
	"context"
	"errors"

	"touragency/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *gorm.DB, trans *model.PaymentTransaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(trans).Error
}

func (r *TransactionRepository) GetByTransactionNo(ctx context.Context, transactionNo string) (*model.PaymentTransaction, error) {
	var trans model.PaymentTransaction
	err := r.db.WithContext(ctx).Where("transaction_no = ?", transactionNo).First(&trans).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trans, nil
}

func (r *TransactionRepository) ListByPaymentID(ctx context.Context, paymentID int64) ([]model.PaymentTransaction, error) {
	var transactions []model.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("transaction_date ASC").
		Find(&transactions).Error
	return transactions, err
}
