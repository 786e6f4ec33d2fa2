package models

import (
	"time"
)

// Payout methods and statuses
const (
	PayoutMethodBank   = "bank_transfer"
	PayoutMethodUpi    = "upi"
	PayoutMethodWallet = "wallet"

	PayoutPending    = "PENDING"
	PayoutProcessing = "PROCESSING"
	PayoutCompleted  = "COMPLETED"
	PayoutRejected   = "REJECTED"
	PayoutCancelled  = "CANCELLED"
)

// PayoutRequest is a user-initiated withdrawal against settled commissions.
// Method-specific detail columns are flat; only the columns for the chosen
// method are populated.
type PayoutRequest struct {
	ID                int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId            int        `gorm:"column:user_id;not null;index" json:"user_id"`
	Amount            float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	PaymentMethod     string     `gorm:"column:payment_method;size:20;not null" json:"payment_method"`
	AccountNumber     string     `gorm:"column:account_number;size:30" json:"account_number,omitempty"`
	IfscCode          string     `gorm:"column:ifsc_code;size:15" json:"ifsc_code,omitempty"`
	AccountHolderName string     `gorm:"column:account_holder_name;size:150" json:"account_holder_name,omitempty"`
	UpiId             string     `gorm:"column:upi_id;size:256" json:"upi_id,omitempty"`
	WalletType        string     `gorm:"column:wallet_type;size:20" json:"wallet_type,omitempty"`
	WalletId          string     `gorm:"column:wallet_id;size:100" json:"wallet_id,omitempty"`
	Status            string     `gorm:"column:status;size:20;not null;default:PENDING;index" json:"status"`
	DisbursementRef   *string    `gorm:"column:disbursement_ref;size:64" json:"disbursement_ref"`
	AdminNotes        string     `gorm:"column:admin_notes;type:text" json:"admin_notes"`
	ProcessedAt       *time.Time `gorm:"column:processed_at" json:"processed_at"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PayoutRequest) TableName() string {
	return "payout_requests"
}
