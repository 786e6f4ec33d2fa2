package services

import (
	"log"
	"time"

	"github.com/naveenreddy007/raju-course--sub000/internal/models"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CommissionService is the ledger: it persists calculator output, drives the
// PENDING→PAID lifecycle and answers commission history queries.
type CommissionService struct {
	DB *gorm.DB
}

func NewCommissionService(db *gorm.DB) *CommissionService {
	return &CommissionService{DB: db}
}

// CreateForPurchase writes one PENDING commission row per entry inside the
// caller's transaction and bumps each beneficiary's earning totals. Any
// failure aborts the whole batch: a purchase must never commit with only
// part of its commissions recorded.
func (s *CommissionService) CreateForPurchase(tx *gorm.DB, purchaseId int, entries []CommissionEntry) ([]models.Commission, error) {
	created := make([]models.Commission, 0, len(entries))

	for _, e := range entries {
		c := models.Commission{
			UserId:       e.UserId,
			SourceUserId: e.SourceUserId,
			PurchaseId:   purchaseId,
			Amount:       e.Amount,
			Type:         e.Type,
			Level:        e.Level,
			Status:       models.CommissionPending,
		}
		if err := tx.Create(&c).Error; err != nil {
			return nil, err
		}

		earningsCol := "total_direct_earnings"
		if e.Type == models.CommissionIndirect {
			earningsCol = "total_indirect_earnings"
		}
		if err := tx.Model(&models.Affiliate{}).
			Where("user_id = ?", e.UserId).
			UpdateColumn(earningsCol, gorm.Expr(earningsCol+" + ?", e.Amount)).Error; err != nil {
			return nil, err
		}

		created = append(created, c)
	}

	return created, nil
}

// HasCommissions reports whether a purchase already produced ledger rows.
// Used to keep retried confirmations from double-creating commissions.
func (s *CommissionService) HasCommissions(tx *gorm.DB, purchaseId int) (bool, error) {
	var count int64
	if err := tx.Model(&models.Commission{}).
		Where("purchase_id = ?", purchaseId).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SettleCommissions marks the given PENDING commissions PAID and stamps
// paid_at plus the settlement reference. Rows not currently PENDING are
// silently excluded by the status guard, so re-submitting a batch is safe:
// already-paid commissions keep their original paid_at and are never paid
// twice. Returns the number of rows settled.
func (s *CommissionService) SettleCommissions(ids []int, settlementRef string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if settlementRef == "" {
		settlementRef = uuid.NewString()
	}

	res := s.DB.Model(&models.Commission{}).
		Where("id IN ? AND status = ?", ids, models.CommissionPending).
		Updates(map[string]interface{}{
			"status":         models.CommissionPaid,
			"paid_at":        time.Now(),
			"settlement_ref": settlementRef,
		})
	return res.RowsAffected, res.Error
}

// SettleMatured settles every PENDING commission older than the maturation
// window. Target of the daily scheduler.
func (s *CommissionService) SettleMatured(maturity time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maturity)

	var ids []int
	if err := s.DB.Model(&models.Commission{}).
		Where("status = ? AND created_at <= ?", models.CommissionPending, cutoff).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	return s.SettleCommissions(ids, "AUTO-"+uuid.NewString())
}

// StartScheduler initializes the cron job that settles matured commissions
// daily at 01:00.
func (s *CommissionService) StartScheduler(maturity time.Duration) {
	c := cron.New()
	_, err := c.AddFunc("0 1 * * *", func() {
		log.Println("Running scheduled commission settlement...")
		settled, err := s.SettleMatured(maturity)
		if err != nil {
			log.Printf("Error settling matured commissions: %v", err)
			return
		}
		log.Printf("Settled %d matured commissions", settled)
	})
	if err != nil {
		log.Printf("Error scheduling commission settlement: %v", err)
		return
	}
	c.Start()
	log.Println("Commission Settlement Scheduler started (Daily at 01:00)")
}

type ListCommissionsDTO struct {
	UserId int
	Status string
	Page   int
	Limit  int
}

// ListCommissions returns a user's commission history, newest first.
func (s *CommissionService) ListCommissions(data ListCommissionsDTO) (common.PaginationResult, error) {
	limit := data.Limit
	if limit <= 0 {
		limit = 50
	}
	page := data.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Commission{}).Where("user_id = ?", data.UserId)
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var commissions []models.Commission
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&commissions).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(commissions, total, page, limit, "Commissions fetched successfully"), nil
}
