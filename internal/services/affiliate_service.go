package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/naveenreddy007/raju-course--sub000/internal/models"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const referralCodeAttempts = 5

type AffiliateService struct {
	DB *gorm.DB
}

func NewAffiliateService(db *gorm.DB) *AffiliateService {
	return &AffiliateService{DB: db}
}

// EnsureProfile creates the purchaser's affiliate profile on their first
// package purchase, or re-snapshots the package terms on an upgrade. Runs
// inside the purchase transaction.
func (s *AffiliateService) EnsureProfile(tx *gorm.DB, userId int, pkg *models.Package) (*models.Affiliate, error) {
	var aff models.Affiliate
	err := tx.Where("user_id = ?", userId).First(&aff).Error
	if err == nil {
		aff.PackageType = pkg.Type
		aff.PackagePrice = pkg.Price
		aff.DirectRate = pkg.DirectRate
		aff.IndirectRate = pkg.IndirectRate
		aff.IsActive = true
		if err := tx.Save(&aff).Error; err != nil {
			return nil, err
		}
		return &aff, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		aff = models.Affiliate{
			UserId:       userId,
			ReferralCode: common.GenerateReferralCode(),
			PackageType:  pkg.Type,
			PackagePrice: pkg.Price,
			DirectRate:   pkg.DirectRate,
			IndirectRate: pkg.IndirectRate,
			IsActive:     true,
		}
		err = tx.Create(&aff).Error
		if err == nil {
			return &aff, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("could not allocate a unique referral code after %d attempts", referralCodeAttempts)
}

// GetProfile fetches a user's affiliate profile.
func (s *AffiliateService) GetProfile(userId int) (*models.Affiliate, error) {
	var aff models.Affiliate
	if err := s.DB.Where("user_id = ?", userId).First(&aff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("affiliate", userId)
		}
		return nil, err
	}
	return &aff, nil
}

// RefreshBalance recomputes the display cache (current_balance and
// total_withdrawn) from the commission and payout tables. The cache is only
// ever read for dashboards; payout eligibility recomputes from source rows.
func (s *AffiliateService) RefreshBalance(userId int) error {
	var earned, paidOut, pending float64

	if err := s.DB.Model(&models.Commission{}).
		Where("user_id = ? AND status = ?", userId, models.CommissionPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&earned).Error; err != nil {
		return err
	}
	if err := s.DB.Model(&models.PayoutRequest{}).
		Where("user_id = ? AND status = ?", userId, models.PayoutCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&paidOut).Error; err != nil {
		return err
	}
	if err := s.DB.Model(&models.PayoutRequest{}).
		Where("user_id = ? AND status IN ?", userId, []string{models.PayoutPending, models.PayoutProcessing}).
		Select("COALESCE(SUM(amount), 0)").Scan(&pending).Error; err != nil {
		return err
	}

	balance := earned - paidOut - pending
	if balance < 0 {
		balance = 0
	}

	return s.DB.Model(&models.Affiliate{}).
		Where("user_id = ?", userId).
		UpdateColumns(map[string]interface{}{
			"current_balance": balance,
			"total_withdrawn": paidOut,
		}).Error
}

// RefreshAllBalances refreshes the cache for every active affiliate.
func (s *AffiliateService) RefreshAllBalances() error {
	var userIds []int
	if err := s.DB.Model(&models.Affiliate{}).
		Where("is_active = ?", true).
		Pluck("user_id", &userIds).Error; err != nil {
		return err
	}

	for _, id := range userIds {
		if err := s.RefreshBalance(id); err != nil {
			log.Printf("Error refreshing balance for user %d: %v", id, err)
		}
	}
	return nil
}

// StartScheduler initializes the cron job that refreshes all balance caches
// nightly at 02:00.
func (s *AffiliateService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 2 * * *", func() {
		log.Println("Running scheduled balance projection refresh...")
		if err := s.RefreshAllBalances(); err != nil {
			log.Printf("Error refreshing balance projections: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling balance refresh: %v", err)
		return
	}
	c.Start()
	log.Println("Balance Projection Scheduler started (Daily at 02:00)")
}
