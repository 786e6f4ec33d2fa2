package models

import (
	"time"
)

// Purchase statuses
const (
	PurchaseSuccess  = "SUCCESS"
	PurchaseFailed   = "FAILED"
	PurchaseRefunded = "REFUNDED"
)

// PackagePurchase is the immutable record of one package transaction. It is
// created once per confirmed payment and anchors the commissions it spawned.
type PackagePurchase struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId     int       `gorm:"column:user_id;not null;index" json:"user_id"`
	PackageId  int       `gorm:"column:package_id;not null" json:"package_id"`
	Amount     float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	OrderRef   string    `gorm:"column:order_ref;size:64;not null;uniqueIndex" json:"order_ref"`
	PaymentRef string    `gorm:"column:payment_ref;size:64" json:"payment_ref"`
	Status     string    `gorm:"column:status;size:20;not null" json:"status"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PackagePurchase) TableName() string {
	return "package_purchases"
}
