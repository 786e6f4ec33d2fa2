package consumers

import (
	"context"
	"log"

	"github.com/naveenreddy007/raju-course--sub000/internal/services"

	"gorm.io/gorm"
)

// PayoutProcessor executes queued work against the services. In production
// the disbursement step would call the bank or UPI gateway here before
// finalizing; the transfer itself is outside this service.
type PayoutProcessor struct {
	DB         *gorm.DB
	Payouts    *services.PayoutService
	Affiliates *services.AffiliateService
}

func NewPayoutProcessor(db *gorm.DB, payouts *services.PayoutService, affiliates *services.AffiliateService) *PayoutProcessor {
	return &PayoutProcessor{DB: db, Payouts: payouts, Affiliates: affiliates}
}

// ProcessDisbursement finalizes an approved payout and refreshes the owner's
// balance cache. Safe to redeliver: completion only touches PROCESSING rows.
func (p *PayoutProcessor) ProcessDisbursement(ctx context.Context, payoutId int) error {
	if err := p.Payouts.CompletePayout(payoutId); err != nil {
		return err
	}

	request, err := p.Payouts.GetPayout(payoutId)
	if err != nil {
		return err
	}
	if err := p.Affiliates.RefreshBalance(request.UserId); err != nil {
		log.Printf("Error refreshing balance after disbursement of payout %d: %v", payoutId, err)
	}
	return nil
}

// ProcessBalanceRefresh recomputes one user's cached balance.
func (p *PayoutProcessor) ProcessBalanceRefresh(ctx context.Context, userId int) error {
	return p.Affiliates.RefreshBalance(userId)
}
