package services

import (
	"errors"

	"github.com/naveenreddy007/raju-course--sub000/internal/models"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"

	"gorm.io/gorm"
)

type ReferralService struct {
	DB *gorm.DB
}

func NewReferralService(db *gorm.DB) *ReferralService {
	return &ReferralService{DB: db}
}

// ResolveBeneficiaries walks the referral chain upward from the purchaser:
// the referrer at level 1, the referrer's referrer at level 2. The walk is
// strictly bounded to two levels no matter how long the chain is, and level
// 1 is resolved before level 2 is looked up.
//
// An unreferred purchaser yields an empty slice, which is a valid outcome.
// A purchaser id that does not exist is a caller precondition violation and
// returns NotFoundError. A referrer that has since been deleted terminates
// the walk at the last resolvable hop.
func (s *ReferralService) ResolveBeneficiaries(tx *gorm.DB, purchaserId int) ([]Beneficiary, error) {
	var purchaser models.User
	if err := tx.First(&purchaser, purchaserId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("user", purchaserId)
		}
		return nil, err
	}

	beneficiaries := make([]Beneficiary, 0, 2)
	if purchaser.ReferredBy == nil {
		return beneficiaries, nil
	}

	var level1 models.User
	if err := tx.First(&level1, *purchaser.ReferredBy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return beneficiaries, nil
		}
		return nil, err
	}
	beneficiaries = append(beneficiaries, Beneficiary{UserId: level1.ID, Level: 1})

	if level1.ReferredBy == nil {
		return beneficiaries, nil
	}

	var level2 models.User
	if err := tx.First(&level2, *level1.ReferredBy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return beneficiaries, nil
		}
		return nil, err
	}
	beneficiaries = append(beneficiaries, Beneficiary{UserId: level2.ID, Level: 2})

	return beneficiaries, nil
}

type ReferralStats struct {
	DirectReferrals   int64   `json:"directReferrals"`
	IndirectReferrals int64   `json:"indirectReferrals"`
	DirectEarnings    float64 `json:"directEarnings"`
	IndirectEarnings  float64 `json:"indirectEarnings"`
}

// GetReferralStats aggregates the dashboard view of a user's network: how
// many users they referred (and those users referred in turn), and the
// commission earned at each level.
func (s *ReferralService) GetReferralStats(userId int) (ReferralStats, error) {
	var stats ReferralStats

	if err := s.DB.Model(&models.User{}).
		Where("referred_by = ?", userId).
		Count(&stats.DirectReferrals).Error; err != nil {
		return stats, err
	}

	var directIds []int
	if err := s.DB.Model(&models.User{}).
		Where("referred_by = ?", userId).
		Pluck("id", &directIds).Error; err != nil {
		return stats, err
	}
	if len(directIds) > 0 {
		if err := s.DB.Model(&models.User{}).
			Where("referred_by IN ?", directIds).
			Count(&stats.IndirectReferrals).Error; err != nil {
			return stats, err
		}
	}

	if err := s.DB.Model(&models.Commission{}).
		Where("user_id = ? AND type = ?", userId, models.CommissionDirect).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.DirectEarnings).Error; err != nil {
		return stats, err
	}
	if err := s.DB.Model(&models.Commission{}).
		Where("user_id = ? AND type = ?", userId, models.CommissionIndirect).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.IndirectEarnings).Error; err != nil {
		return stats, err
	}

	return stats, nil
}
