package models

import (
	"time"
)

// Commission types and statuses
const (
	CommissionDirect   = "DIRECT"
	CommissionIndirect = "INDIRECT"

	CommissionPending = "PENDING"
	CommissionPaid    = "PAID"
)

// Commission is the core ledger row. Amount is fixed at creation time from
// the package price and rate; it is never recomputed. The unique index on
// (purchase_id, user_id, level) makes commission creation idempotent per
// purchase and rejects partial duplicates inside a retried batch.
type Commission struct {
	ID            int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId        int        `gorm:"column:user_id;not null;index;index:idx_commission_unique,unique" json:"user_id"`
	SourceUserId  int        `gorm:"column:source_user_id;not null;index" json:"source_user_id"`
	PurchaseId    int        `gorm:"column:purchase_id;not null;index:idx_commission_unique,unique" json:"purchase_id"`
	Amount        float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Type          string     `gorm:"column:type;size:20;not null" json:"type"`
	Level         int        `gorm:"column:level;not null;index:idx_commission_unique,unique" json:"level"`
	Status        string     `gorm:"column:status;size:20;not null;default:PENDING;index" json:"status"`
	SettlementRef *string    `gorm:"column:settlement_ref;size:64" json:"settlement_ref"`
	PaidAt        *time.Time `gorm:"column:paid_at" json:"paid_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Commission) TableName() string {
	return "commissions"
}
