package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/naveenreddy007/raju-course--sub000/internal/models"
	"github.com/naveenreddy007/raju-course--sub000/internal/worker"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MinimumPayout is the smallest amount an affiliate may request.
const MinimumPayout = 100.0

// PayoutService owns payout eligibility and the request lifecycle
// PENDING → PROCESSING → COMPLETED (or REJECTED / CANCELLED).
type PayoutService struct {
	DB     *gorm.DB
	Client *asynq.Client
}

func NewPayoutService(db *gorm.DB, client *asynq.Client) *PayoutService {
	return &PayoutService{DB: db, Client: client}
}

// BalanceSummary is the eligibility view of an affiliate's money. Every
// figure is recomputed from the commission and payout tables, never read
// from the cached affiliate columns.
type BalanceSummary struct {
	TotalEarned        float64 `json:"totalEarned"`
	TotalPaidOut       float64 `json:"totalPaidOut"`
	PendingPayouts     float64 `json:"pendingPayouts"`
	AvailableForPayout float64 `json:"availableForPayout"`
}

// computeBalance derives the payable balance from source rows: PAID
// commissions minus completed payouts minus in-flight requests, floored at
// zero. Runs on whatever handle the caller holds so it can share a lock
// with RequestPayout.
func (s *PayoutService) computeBalance(tx *gorm.DB, userId int) (BalanceSummary, error) {
	var summary BalanceSummary

	if err := tx.Model(&models.Commission{}).
		Where("user_id = ? AND status = ?", userId, models.CommissionPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.TotalEarned).Error; err != nil {
		return summary, err
	}
	if err := tx.Model(&models.PayoutRequest{}).
		Where("user_id = ? AND status = ?", userId, models.PayoutCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.TotalPaidOut).Error; err != nil {
		return summary, err
	}
	if err := tx.Model(&models.PayoutRequest{}).
		Where("user_id = ? AND status IN ?", userId, []string{models.PayoutPending, models.PayoutProcessing}).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.PendingPayouts).Error; err != nil {
		return summary, err
	}

	summary.AvailableForPayout = summary.TotalEarned - summary.TotalPaidOut - summary.PendingPayouts
	if summary.AvailableForPayout < 0 {
		summary.AvailableForPayout = 0
	}
	return summary, nil
}

// GetBalanceSummary returns the recomputed balance view for a user.
func (s *PayoutService) GetBalanceSummary(userId int) (BalanceSummary, error) {
	return s.computeBalance(s.DB, userId)
}

type PayoutRequestDTO struct {
	UserId        int
	Amount        float64
	PaymentMethod string
	Details       PaymentDetails
}

// RequestPayout validates and records a withdrawal request. Guards run in
// order: positive amount, minimum, balance, then payment details. The
// affiliate row is locked FOR UPDATE for the duration of the transaction so
// two concurrent requests against the same balance serialize: the second one
// sees the first request's PENDING row and fails the balance check.
func (s *PayoutService) RequestPayout(data PayoutRequestDTO) (*models.PayoutRequest, error) {
	if data.Amount <= 0 {
		return nil, common.NewValidationError(common.CodeInvalidAmount, "amount", "amount must be positive")
	}
	if data.Amount < MinimumPayout {
		return nil, common.NewValidationError(common.CodeBelowMinimum, "amount", "minimum payout is %.0f, requested %.2f", MinimumPayout, data.Amount)
	}

	var request models.PayoutRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var aff models.Affiliate
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", data.UserId).
			First(&aff).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("affiliate", data.UserId)
			}
			return err
		}

		summary, err := s.computeBalance(tx, data.UserId)
		if err != nil {
			return err
		}
		if data.Amount > summary.AvailableForPayout {
			return &common.InsufficientBalanceError{
				Available: summary.AvailableForPayout,
				Requested: data.Amount,
			}
		}

		if err := ValidatePaymentDetails(data.PaymentMethod, data.Details); err != nil {
			return err
		}

		request = models.PayoutRequest{
			UserId:            data.UserId,
			Amount:            data.Amount,
			PaymentMethod:     data.PaymentMethod,
			AccountNumber:     data.Details.AccountNumber,
			IfscCode:          data.Details.IfscCode,
			AccountHolderName: data.Details.AccountHolderName,
			UpiId:             data.Details.UpiId,
			WalletType:        data.Details.WalletType,
			WalletId:          data.Details.WalletId,
			Status:            models.PayoutPending,
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ApprovePayout moves a PENDING request to PROCESSING and assigns the
// disbursement reference the downstream transfer will carry.
func (s *PayoutService) ApprovePayout(id int, adminNotes string) (*models.PayoutRequest, error) {
	var request models.PayoutRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("payout request", id)
			}
			return err
		}
		if request.Status != models.PayoutPending {
			return common.NewValidationError(common.CodeInvalidState, "status", "payout request is %s, only PENDING requests can be approved", request.Status)
		}

		ref := uuid.NewString()
		request.Status = models.PayoutProcessing
		request.DisbursementRef = &ref
		request.AdminNotes = adminNotes
		return tx.Save(&request).Error
	})
	if err != nil {
		return nil, err
	}

	s.enqueueDisbursement(request.ID)
	return &request, nil
}

// enqueueDisbursement hands the approved request to the worker. The task id
// ties one task to one payout, so a duplicate enqueue is rejected by the
// queue rather than producing a second transfer.
func (s *PayoutService) enqueueDisbursement(payoutId int) {
	if s.Client == nil {
		return
	}
	task, err := worker.NewPayoutDisburseTask(payoutId, fmt.Sprintf("payout:%d", payoutId))
	if err != nil {
		log.Printf("Error building disbursement task for payout %d: %v", payoutId, err)
		return
	}
	if _, err := s.Client.Enqueue(task); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		log.Printf("Error enqueueing disbursement for payout %d: %v", payoutId, err)
	}
}

// RejectPayout declines a PENDING request. The reserved amount is released
// immediately since eligibility only counts PENDING and PROCESSING rows.
func (s *PayoutService) RejectPayout(id int, adminNotes string) (*models.PayoutRequest, error) {
	var request models.PayoutRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("payout request", id)
			}
			return err
		}
		if request.Status != models.PayoutPending {
			return common.NewValidationError(common.CodeInvalidState, "status", "payout request is %s, only PENDING requests can be rejected", request.Status)
		}

		now := time.Now()
		request.Status = models.PayoutRejected
		request.AdminNotes = adminNotes
		request.ProcessedAt = &now
		return tx.Save(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CancelPayout lets the owner withdraw their own PENDING request.
func (s *PayoutService) CancelPayout(userId, id int) (*models.PayoutRequest, error) {
	var request models.PayoutRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userId).
			First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("payout request", id)
			}
			return err
		}
		if request.Status != models.PayoutPending {
			return common.NewValidationError(common.CodeInvalidState, "status", "payout request is %s, only PENDING requests can be cancelled", request.Status)
		}

		now := time.Now()
		request.Status = models.PayoutCancelled
		request.ProcessedAt = &now
		return tx.Save(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CompletePayout finalizes a disbursed request. Called from the worker after
// the transfer succeeds; only PROCESSING rows transition, so a redelivered
// task is a no-op.
func (s *PayoutService) CompletePayout(id int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var request models.PayoutRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("payout request", id)
			}
			return err
		}
		if request.Status != models.PayoutProcessing {
			return nil
		}

		now := time.Now()
		request.Status = models.PayoutCompleted
		request.ProcessedAt = &now
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		return tx.Model(&models.Affiliate{}).
			Where("user_id = ?", request.UserId).
			UpdateColumn("total_withdrawn", gorm.Expr("total_withdrawn + ?", request.Amount)).Error
	})
}

// GetPayout fetches a single payout request by id.
func (s *PayoutService) GetPayout(id int) (*models.PayoutRequest, error) {
	var request models.PayoutRequest
	if err := s.DB.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("payout request", id)
		}
		return nil, err
	}
	return &request, nil
}

// ListPayouts returns a user's payout history, newest first.
func (s *PayoutService) ListPayouts(userId, page, limit int) (common.PaginationResult, error) {
	return s.paginate(s.DB.Model(&models.PayoutRequest{}).Where("user_id = ?", userId), page, limit, "Payout requests fetched successfully")
}

// ListPendingPayouts returns the admin review queue.
func (s *PayoutService) ListPendingPayouts(page, limit int) (common.PaginationResult, error) {
	return s.paginate(s.DB.Model(&models.PayoutRequest{}).Where("status = ?", models.PayoutPending), page, limit, "Pending payout requests fetched successfully")
}

func (s *PayoutService) paginate(query *gorm.DB, page, limit int, message string) (common.PaginationResult, error) {
	if limit <= 0 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var requests []models.PayoutRequest
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(requests, total, page, limit, message), nil
}
