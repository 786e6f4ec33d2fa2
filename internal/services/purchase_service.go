package services

import (
	"errors"
	"log"

	"github.com/naveenreddy007/raju-course--sub000/internal/models"
	"github.com/naveenreddy007/raju-course--sub000/internal/worker"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// PurchaseService runs the confirmation pipeline: record the purchase,
// ensure the buyer's affiliate profile, resolve the referral chain and write
// the resulting commissions, all in one transaction.
type PurchaseService struct {
	DB          *gorm.DB
	Referrals   *ReferralService
	Commissions *CommissionService
	Affiliates  *AffiliateService
	Client      *asynq.Client
}

func NewPurchaseService(db *gorm.DB, referrals *ReferralService, commissions *CommissionService, affiliates *AffiliateService, client *asynq.Client) *PurchaseService {
	return &PurchaseService{
		DB:          db,
		Referrals:   referrals,
		Commissions: commissions,
		Affiliates:  affiliates,
		Client:      client,
	}
}

type ConfirmPurchaseDTO struct {
	UserId     int
	PackageId  int
	AmountPaid float64
	OrderRef   string
	PaymentRef string
}

// ConfirmPurchase is called once the payment gateway reports success. It is
// idempotent on OrderRef: re-confirming a known order returns the existing
// purchase without writing new commissions. If an older row exists without
// commissions they are backfilled.
func (s *PurchaseService) ConfirmPurchase(data ConfirmPurchaseDTO) (*models.PackagePurchase, error) {
	if data.OrderRef == "" {
		return nil, common.NewValidationError(common.CodeInvalidDetails, "orderRef", "order reference is required")
	}
	if data.AmountPaid <= 0 {
		return nil, common.NewValidationError(common.CodeInvalidAmount, "amountPaid", "amount paid must be positive")
	}

	var pkg models.Package
	if err := s.DB.First(&pkg, data.PackageId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("package", data.PackageId)
		}
		return nil, err
	}

	var purchase models.PackagePurchase
	var beneficiaries []Beneficiary

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("order_ref = ?", data.OrderRef).First(&purchase).Error
		if err == nil {
			exists, err := s.Commissions.HasCommissions(tx, purchase.ID)
			if err != nil {
				return err
			}
			if exists {
				return nil
			}
			beneficiaries, err = s.createCommissions(tx, &purchase, &pkg)
			return err
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		purchase = models.PackagePurchase{
			UserId:     data.UserId,
			PackageId:  pkg.ID,
			Amount:     data.AmountPaid,
			OrderRef:   data.OrderRef,
			PaymentRef: data.PaymentRef,
			Status:     models.PurchaseSuccess,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		if _, err := s.Affiliates.EnsureProfile(tx, purchase.UserId, &pkg); err != nil {
			return err
		}

		beneficiaries, err = s.createCommissions(tx, &purchase, &pkg)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.enqueueBalanceRefreshes(beneficiaries)
	return &purchase, nil
}

// createCommissions resolves the chain and persists calculator output inside
// the caller's transaction. Commission amounts come from the package price,
// not the amount actually paid, so discounts never change payouts.
//
// Package rows are immutable once sold; repricing means adding a new row and
// clearing the old one's Active flag. The backfill path relies on this: it
// recomputes from the package row and must reproduce the original amounts.
func (s *PurchaseService) createCommissions(tx *gorm.DB, purchase *models.PackagePurchase, pkg *models.Package) ([]Beneficiary, error) {
	beneficiaries, err := s.Referrals.ResolveBeneficiaries(tx, purchase.UserId)
	if err != nil {
		return nil, err
	}
	if len(beneficiaries) == 0 {
		return nil, nil
	}

	rates := CommissionRates{Direct: pkg.DirectRate, Indirect: pkg.IndirectRate}
	entries, err := CalculateCommissions(beneficiaries, purchase.UserId, pkg.Price, rates)
	if err != nil {
		return nil, err
	}

	if _, err := s.Commissions.CreateForPurchase(tx, purchase.ID, entries); err != nil {
		return nil, err
	}
	return beneficiaries, nil
}

// enqueueBalanceRefreshes schedules cache refreshes for everyone whose
// totals just moved. Best effort: the nightly refresh covers any miss.
func (s *PurchaseService) enqueueBalanceRefreshes(beneficiaries []Beneficiary) {
	if s.Client == nil {
		return
	}
	for _, b := range beneficiaries {
		task, err := worker.NewBalanceRefreshTask(b.UserId)
		if err != nil {
			log.Printf("Error building balance refresh task for user %d: %v", b.UserId, err)
			continue
		}
		if _, err := s.Client.Enqueue(task); err != nil {
			log.Printf("Error enqueueing balance refresh for user %d: %v", b.UserId, err)
		}
	}
}
