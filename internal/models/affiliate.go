package models

import (
	"time"
)

// Affiliate is the 1:1 earning profile attached to a user. The running
// totals and current_balance are a display cache; payout decisions always
// recompute from the commission and payout tables.
type Affiliate struct {
	ID                    int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId                int       `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	ReferralCode          string    `gorm:"column:referral_code;size:20;not null;uniqueIndex" json:"referral_code"`
	PackageType           string    `gorm:"column:package_type;size:20;not null" json:"package_type"`
	PackagePrice          float64   `gorm:"column:package_price;type:decimal(20,2);not null" json:"package_price"`
	DirectRate            float64   `gorm:"column:direct_rate;type:decimal(5,2);not null" json:"direct_rate"`
	IndirectRate          float64   `gorm:"column:indirect_rate;type:decimal(5,2);not null" json:"indirect_rate"`
	TotalDirectEarnings   float64   `gorm:"column:total_direct_earnings;type:decimal(20,2);default:0.00" json:"total_direct_earnings"`
	TotalIndirectEarnings float64   `gorm:"column:total_indirect_earnings;type:decimal(20,2);default:0.00" json:"total_indirect_earnings"`
	TotalWithdrawn        float64   `gorm:"column:total_withdrawn;type:decimal(20,2);default:0.00" json:"total_withdrawn"`
	CurrentBalance        float64   `gorm:"column:current_balance;type:decimal(20,2);default:0.00" json:"current_balance"`
	IsActive              bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}
