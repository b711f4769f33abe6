package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func tx(txType, amount string) PaymentTransaction {
	return PaymentTransaction{
		Type:            txType,
		Amount:          dec(amount),
		TransactionDate: time.Now(),
	}
}

func newPayment(amountDue string, status string) *Payment {
	return &Payment{
		ID:        1,
		BookingID: 1,
		Status:    status,
		AmountDue: dec(amountDue),
	}
}

func TestNetPaid(t *testing.T) {
	assert.True(t, NetPaid(nil).IsZero())

	transactions := []PaymentTransaction{
		tx(TransactionTypeDeposit, "60"),
		tx(TransactionTypeFinal, "40"),
		tx(TransactionTypeRefund, "30"),
	}
	assert.True(t, NetPaid(transactions).Equal(dec("70")))
}

func TestValidateTransaction_Deposit(t *testing.T) {
	tests := []struct {
		name     string
		existing []PaymentTransaction
		amount   string
		wantKind ErrKind
	}{
		{"cap boundary accepted", nil, "80", ErrKindUnknown},
		{"below cap accepted", nil, "50", ErrKindUnknown},
		{"above cap rejected", nil, "80.01", ErrKindInvalidOperation},
		{"not first transaction rejected", []PaymentTransaction{tx(TransactionTypeDeposit, "10")}, "20", ErrKindInvalidOperation},
		{"zero amount rejected", nil, "0", ErrKindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPayment("100", PaymentStatusPending)
			err := ValidateTransaction(p, tt.existing, TransactionTypeDeposit, dec(tt.amount))
			if tt.wantKind == ErrKindUnknown {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, KindOf(err))
			}
		})
	}
}

// 定金上限低于应付金额，amount >= amountDue 必然同时超过上限，
// 两条规则都要有，拒绝原因以先命中的上限为准
func TestValidateTransaction_DepositNeverReachesAmountDue(t *testing.T) {
	p := newPayment("100", PaymentStatusPending)
	err := ValidateTransaction(p, nil, TransactionTypeDeposit, dec("100"))
	require.Error(t, err)
	assert.Equal(t, ErrKindInvalidOperation, KindOf(err))
}

func TestValidateTransaction_FullPayment(t *testing.T) {
	p := newPayment("100", PaymentStatusPending)

	// 金额必须精确等于应付金额
	assert.NoError(t, ValidateTransaction(p, nil, TransactionTypePayment, dec("100")))
	assert.Error(t, ValidateTransaction(p, nil, TransactionTypePayment, dec("99.99")))
	assert.Error(t, ValidateTransaction(p, nil, TransactionTypePayment, dec("100.01")))

	// 已有流水后不能再做一次性全款
	existing := []PaymentTransaction{tx(TransactionTypeDeposit, "60")}
	assert.Error(t, ValidateTransaction(p, existing, TransactionTypePayment, dec("100")))
}

func TestValidateTransaction_Final(t *testing.T) {
	p := newPayment("100", PaymentStatusPending)

	// 没有定金时不能收尾款
	err := ValidateTransaction(p, nil, TransactionTypeFinal, dec("40"))
	require.Error(t, err)
	assert.Equal(t, ErrKindInvalidOperation, KindOf(err))

	// 尾款必须精确等于剩余应付金额
	existing := []PaymentTransaction{tx(TransactionTypeDeposit, "60")}
	assert.NoError(t, ValidateTransaction(p, existing, TransactionTypeFinal, dec("40")))
	assert.Error(t, ValidateTransaction(p, existing, TransactionTypeFinal, dec("39.99")))
	assert.Error(t, ValidateTransaction(p, existing, TransactionTypeFinal, dec("40.01")))

	// 已付清后无剩余应付
	paid := []PaymentTransaction{
		tx(TransactionTypeDeposit, "60"),
		tx(TransactionTypeFinal, "40"),
	}
	assert.Error(t, ValidateTransaction(p, paid, TransactionTypeFinal, dec("1")))
}

func TestValidateTransaction_Refund(t *testing.T) {
	existing := []PaymentTransaction{tx(TransactionTypePayment, "100")}

	// 待支付状态一律不能退款，与金额无关
	pending := newPayment("100", PaymentStatusPending)
	err := ValidateTransaction(pending, existing, TransactionTypeRefund, dec("1"))
	require.Error(t, err)
	assert.Equal(t, ErrKindInvalidOperation, KindOf(err))

	complete := newPayment("100", PaymentStatusComplete)
	assert.NoError(t, ValidateTransaction(complete, existing, TransactionTypeRefund, dec("100")))
	assert.Error(t, ValidateTransaction(complete, existing, TransactionTypeRefund, dec("100.01")))
	assert.Error(t, ValidateTransaction(complete, nil, TransactionTypeRefund, dec("10")))
}

func TestValidateTransaction_UnknownType(t *testing.T) {
	p := newPayment("100", PaymentStatusPending)
	err := ValidateTransaction(p, nil, "TRANSFER", dec("10"))
	require.Error(t, err)
	assert.Equal(t, ErrKindValidation, KindOf(err))
}

// 完整场景：应付 100，定金 60 -> 尾款 40 -> 退款 50 -> 再退 60 被拒
func TestPaymentScenario(t *testing.T) {
	p := newPayment("100", PaymentStatusPending)
	var history []PaymentTransaction

	record := func(txType, amount string) {
		require.NoError(t, ValidateTransaction(p, history, txType, dec(amount)))
		history = append(history, tx(txType, amount))
		p.Status = NextPaymentStatus(p, txType, NetPaid(history))
	}

	record(TransactionTypeDeposit, "60")
	assert.Equal(t, PaymentStatusPending, p.Status)

	record(TransactionTypeFinal, "40")
	assert.Equal(t, PaymentStatusComplete, p.Status)
	assert.True(t, NetPaid(history).Equal(dec("100")))

	record(TransactionTypeRefund, "50")
	assert.Equal(t, PaymentStatusRefund, p.Status)
	assert.True(t, NetPaid(history).Equal(dec("50")))

	// 已付净额只剩 50，再退 60 超额
	err := ValidateTransaction(p, history, TransactionTypeRefund, dec("60"))
	require.Error(t, err)
	assert.Equal(t, ErrKindInvalidOperation, KindOf(err))
}

func TestNextPaymentStatus(t *testing.T) {
	p := newPayment("100", PaymentStatusPending)

	// 定金未付清，状态不变
	assert.Equal(t, PaymentStatusPending, NextPaymentStatus(p, TransactionTypeDeposit, dec("60")))
	// 付清即完成
	assert.Equal(t, PaymentStatusComplete, NextPaymentStatus(p, TransactionTypeFinal, dec("100")))
	// 退款入账即标记退款
	p.Status = PaymentStatusComplete
	assert.Equal(t, PaymentStatusRefund, NextPaymentStatus(p, TransactionTypeRefund, dec("50")))
}
