package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// 款项与流水
// ============================================================================

const (
	PaymentStatusPending  = "PENDING"  // 待支付
	PaymentStatusComplete = "COMPLETE" // 已付清
	PaymentStatusRefund   = "REFUND"   // 有退款
)

const (
	TransactionTypeDeposit = "DEPOSIT" // 定金
	TransactionTypePayment = "PAYMENT" // 一次性全款
	TransactionTypeFinal   = "FINAL"   // 定金后的尾款
	TransactionTypeRefund  = "REFUND"  // 退款
)

// 定金上限：应付金额的 80%
var depositCapRate = decimal.NewFromFloat(0.8)

// Payment 款项表
// 每个已确认的预订对应一条款项，下挂若干笔流水
type Payment struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID   int64           `gorm:"index;not null" json:"booking_id"`
	Status      string          `gorm:"type:varchar(20);index;not null;default:PENDING" json:"status"`
	AmountDue   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount_due"`
	AmountPaid  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"amount_paid"`
	PaymentDate *time.Time      `json:"payment_date"`
	Notes       string          `gorm:"type:varchar(256)" json:"notes"`

	Transactions []PaymentTransaction `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payment"
}

// PaymentMethod 支付方式表（现金、转账、POS 等）
type PaymentMethod struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PaymentMethod) TableName() string {
	return "payment_method"
}

// PaymentTransaction 流水表
// 只追加，创建后除备注外不可修改
// (payment_id, payment_method_id, transaction_date) 上有唯一索引，
// 并发提交同一笔尾款时靠该索引在提交阶段兜底
type PaymentTransaction struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionNo   string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"transaction_no"`
	PaymentID       int64           `gorm:"not null;uniqueIndex:uk_payment_method_date" json:"payment_id"`
	PaymentMethodID int64           `gorm:"not null;uniqueIndex:uk_payment_method_date" json:"payment_method_id"`
	TransactionDate time.Time       `gorm:"not null;uniqueIndex:uk_payment_method_date" json:"transaction_date"`
	Type            string          `gorm:"type:varchar(20);not null" json:"type"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Notes           string          `gorm:"type:varchar(256)" json:"notes"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transaction"
}

// NetPaid 已付净额：非退款流水合计减去退款流水合计
func NetPaid(transactions []PaymentTransaction) decimal.Decimal {
	net := decimal.Zero
	for _, t := range transactions {
		if t.Type == TransactionTypeRefund {
			net = net.Sub(t.Amount)
		} else {
			net = net.Add(t.Amount)
		}
	}
	return net
}

// DepositCap 当前款项的定金上限
func (p *Payment) DepositCap() decimal.Decimal {
	return p.AmountDue.Mul(depositCapRate)
}

// ValidateTransaction 校验一笔拟新增的流水能否写入
//
// 金额比较使用精确相等（decimal，不做容差），与既有业务口径保持一致。
// 校验只看入参快照，不产生任何副作用；拒绝时返回带原因的领域错误。
func ValidateTransaction(p *Payment, existing []PaymentTransaction, txType string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return NewValidation("流水金额必须大于 0")
	}

	netPaid := NetPaid(existing)

	switch txType {
	case TransactionTypeDeposit:
		if limit := p.DepositCap(); amount.GreaterThan(limit) {
			return NewInvalidOperation("定金不能超过上限 %s", limit)
		}
		if netPaid.IsPositive() {
			return NewInvalidOperation("定金只能作为第一笔流水")
		}
		if amount.GreaterThanOrEqual(p.AmountDue) {
			return NewInvalidOperation("全额支付请使用 %s 类型", TransactionTypePayment)
		}

	case TransactionTypePayment:
		if netPaid.IsPositive() {
			return NewInvalidOperation("已有流水的款项不能再做一次性全款")
		}
		if !amount.Equal(p.AmountDue) {
			return NewInvalidOperation("全款金额必须等于应付金额 %s", p.AmountDue)
		}

	case TransactionTypeFinal:
		if !netPaid.IsPositive() {
			return NewInvalidOperation("尚无定金流水，不能收尾款")
		}
		remaining := p.AmountDue.Sub(netPaid)
		if !remaining.IsPositive() {
			return NewInvalidOperation("该款项已无剩余应付金额")
		}
		if !amount.Equal(remaining) {
			return NewInvalidOperation("尾款金额必须等于剩余应付金额 %s", remaining)
		}

	case TransactionTypeRefund:
		if !netPaid.IsPositive() {
			return NewInvalidOperation("该款项无可退金额")
		}
		if amount.GreaterThan(netPaid) {
			return NewInvalidOperation("退款金额不能超过已付净额 %s", netPaid)
		}
		if p.Status == PaymentStatusPending {
			return NewInvalidOperation("待支付状态的款项不能退款")
		}

	default:
		return NewValidation("未知的流水类型: %s", txType)
	}

	return nil
}

// NextPaymentStatus 新流水入账后的款项状态
func NextPaymentStatus(p *Payment, txType string, netPaidAfter decimal.Decimal) string {
	if txType == TransactionTypeRefund {
		return PaymentStatusRefund
	}
	if netPaidAfter.Equal(p.AmountDue) {
		return PaymentStatusComplete
	}
	return p.Status
}
