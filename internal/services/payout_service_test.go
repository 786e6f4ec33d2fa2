package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/naveenreddy007/raju-course--sub000/internal/models"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"
)

func upiDetails() PaymentDetails {
	return PaymentDetails{UpiId: "payee@upi"}
}

func TestGetBalanceSummary(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPayoutService(testDB, nil)
	user := seedUser(t, "balance@test.com", nil)
	seedAffiliate(t, user.ID)

	// 1000 earned, 300 paid out, 200 reserved -> 500 available
	seedCommission(t, user.ID, 8001, 600, models.CommissionPaid)
	seedCommission(t, user.ID, 8002, 400, models.CommissionPaid)
	seedCommission(t, user.ID, 8003, 250, models.CommissionPending)
	seedPayout(t, user.ID, 300, models.PayoutCompleted)
	seedPayout(t, user.ID, 200, models.PayoutPending)

	summary, err := svc.GetBalanceSummary(user.ID)
	if err != nil {
		t.Fatalf("GetBalanceSummary failed: %v", err)
	}

	if summary.TotalEarned != 1000 {
		t.Errorf("Expected earned 1000, got %f", summary.TotalEarned)
	}
	if summary.TotalPaidOut != 300 {
		t.Errorf("Expected paid out 300, got %f", summary.TotalPaidOut)
	}
	if summary.PendingPayouts != 200 {
		t.Errorf("Expected pending 200, got %f", summary.PendingPayouts)
	}
	if summary.AvailableForPayout != 500 {
		t.Errorf("Expected available 500, got %f", summary.AvailableForPayout)
	}
}

func TestRequestPayoutBoundaries(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPayoutService(testDB, nil)
	user := seedUser(t, "bounds@test.com", nil)
	seedAffiliate(t, user.ID)
	seedCommission(t, user.ID, 8004, 500, models.CommissionPaid)

	// below the minimum
	_, err := svc.RequestPayout(PayoutRequestDTO{UserId: user.ID, Amount: 99, PaymentMethod: models.PayoutMethodUpi, Details: upiDetails()})
	var validationErr *common.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Code != common.CodeBelowMinimum {
		t.Fatalf("Expected BELOW_MINIMUM, got %v", err)
	}

	// above the available balance
	_, err = svc.RequestPayout(PayoutRequestDTO{UserId: user.ID, Amount: 501, PaymentMethod: models.PayoutMethodUpi, Details: upiDetails()})
	var balanceErr *common.InsufficientBalanceError
	if !errors.As(err, &balanceErr) {
		t.Fatalf("Expected InsufficientBalanceError, got %v", err)
	}
	if balanceErr.Available != 500 || balanceErr.Requested != 501 {
		t.Errorf("Unexpected figures in error: %+v", balanceErr)
	}

	// exactly the available balance is allowed
	request, err := svc.RequestPayout(PayoutRequestDTO{UserId: user.ID, Amount: 500, PaymentMethod: models.PayoutMethodUpi, Details: upiDetails()})
	if err != nil {
		t.Fatalf("RequestPayout failed: %v", err)
	}
	if request.Status != models.PayoutPending {
		t.Errorf("Expected PENDING, got %s", request.Status)
	}
}

func TestRequestPayoutBalanceCheckedBeforeDetails(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPayoutService(testDB, nil)
	user := seedUser(t, "order@test.com", nil)
	seedAffiliate(t, user.ID)
	seedCommission(t, user.ID, 8009, 500, models.CommissionPaid)

	// over the balance AND malformed details: the balance guard wins
	_, err := svc.RequestPayout(PayoutRequestDTO{
		UserId:        user.ID,
		Amount:        501,
		PaymentMethod: models.PayoutMethodUpi,
		Details:       PaymentDetails{UpiId: "bad@@id"},
	})
	var balanceErr *common.InsufficientBalanceError
	if !errors.As(err, &balanceErr) {
		t.Fatalf("Expected InsufficientBalanceError, got %v", err)
	}

	// within balance, the malformed details are still rejected
	_, err = svc.RequestPayout(PayoutRequestDTO{
		UserId:        user.ID,
		Amount:        400,
		PaymentMethod: models.PayoutMethodUpi,
		Details:       PaymentDetails{UpiId: "bad@@id"},
	})
	var validationErr *common.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Code != common.CodeInvalidDetails {
		t.Fatalf("Expected INVALID_DETAILS, got %v", err)
	}
}

func TestRequestPayoutNoProfile(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPayoutService(testDB, nil)
	user := seedUser(t, "noprofile@test.com", nil)

	_, err := svc.RequestPayout(PayoutRequestDTO{UserId: user.ID, Amount: 200, PaymentMethod: models.PayoutMethodUpi, Details: upiDetails()})
	var notFound *common.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
}

func TestRequestPayoutConcurrent(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPayoutService(testDB, nil)
	user := seedUser(t, "race@test.com", nil)
	seedAffiliate(t, user.ID)
	seedCommission(t, user.ID, 8005, 500, models.CommissionPaid)

	// two concurrent requests that only fit one at a time
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.RequestPayout(PayoutRequestDTO{
				UserId:        user.ID,
				Amount:        400,
				PaymentMethod: models.PayoutMethodUpi,
				Details:       upiDetails(),
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			var balanceErr *common.InsufficientBalanceError
			if !errors.As(err, &balanceErr) {
				t.Errorf("Expected InsufficientBalanceError for loser, got %v", err)
			}
		}
	}
	if successes != 1 {
		t.Errorf("Expected exactly 1 successful request, got %d", successes)
	}
}

func TestPayoutLifecycle(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPayoutService(testDB, nil)
	user := seedUser(t, "lifecycle@test.com", nil)
	seedAffiliate(t, user.ID)
	seedCommission(t, user.ID, 8006, 500, models.CommissionPaid)

	request, err := svc.RequestPayout(PayoutRequestDTO{UserId: user.ID, Amount: 300, PaymentMethod: models.PayoutMethodUpi, Details: upiDetails()})
	if err != nil {
		t.Fatalf("RequestPayout failed: %v", err)
	}

	approved, err := svc.ApprovePayout(request.ID, "verified")
	if err != nil {
		t.Fatalf("ApprovePayout failed: %v", err)
	}
	if approved.Status != models.PayoutProcessing {
		t.Errorf("Expected PROCESSING, got %s", approved.Status)
	}
	if approved.DisbursementRef == nil || *approved.DisbursementRef == "" {
		t.Error("Expected disbursement ref to be assigned")
	}

	// approving twice is rejected
	_, err = svc.ApprovePayout(request.ID, "")
	var validationErr *common.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Code != common.CodeInvalidState {
		t.Fatalf("Expected INVALID_STATE on double approval, got %v", err)
	}

	if err := svc.CompletePayout(request.ID); err != nil {
		t.Fatalf("CompletePayout failed: %v", err)
	}

	var completed models.PayoutRequest
	testDB.First(&completed, request.ID)
	if completed.Status != models.PayoutCompleted {
		t.Errorf("Expected COMPLETED, got %s", completed.Status)
	}
	if completed.ProcessedAt == nil {
		t.Error("Expected processed_at to be set")
	}

	var aff models.Affiliate
	testDB.Where("user_id = ?", user.ID).First(&aff)
	if aff.TotalWithdrawn != 300 {
		t.Errorf("Expected total withdrawn 300, got %f", aff.TotalWithdrawn)
	}

	// redelivered completion is a no-op
	if err := svc.CompletePayout(request.ID); err != nil {
		t.Fatalf("Redelivered CompletePayout failed: %v", err)
	}
	testDB.Where("user_id = ?", user.ID).First(&aff)
	if aff.TotalWithdrawn != 300 {
		t.Errorf("Redelivery double-counted withdrawal: %f", aff.TotalWithdrawn)
	}
}

func TestRejectPayoutReleasesBalance(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPayoutService(testDB, nil)
	user := seedUser(t, "reject@test.com", nil)
	seedAffiliate(t, user.ID)
	seedCommission(t, user.ID, 8007, 500, models.CommissionPaid)

	request, err := svc.RequestPayout(PayoutRequestDTO{UserId: user.ID, Amount: 400, PaymentMethod: models.PayoutMethodUpi, Details: upiDetails()})
	if err != nil {
		t.Fatalf("RequestPayout failed: %v", err)
	}

	rejected, err := svc.RejectPayout(request.ID, "details mismatch")
	if err != nil {
		t.Fatalf("RejectPayout failed: %v", err)
	}
	if rejected.Status != models.PayoutRejected {
		t.Errorf("Expected REJECTED, got %s", rejected.Status)
	}

	// the reserved amount is available again
	summary, err := svc.GetBalanceSummary(user.ID)
	if err != nil {
		t.Fatalf("GetBalanceSummary failed: %v", err)
	}
	if summary.AvailableForPayout != 500 {
		t.Errorf("Expected available 500 after rejection, got %f", summary.AvailableForPayout)
	}
}

func TestCancelPayoutOwnerScoped(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPayoutService(testDB, nil)
	user := seedUser(t, "cancel@test.com", nil)
	other := seedUser(t, "other@test.com", nil)
	seedAffiliate(t, user.ID)
	seedCommission(t, user.ID, 8008, 500, models.CommissionPaid)

	request, err := svc.RequestPayout(PayoutRequestDTO{UserId: user.ID, Amount: 200, PaymentMethod: models.PayoutMethodUpi, Details: upiDetails()})
	if err != nil {
		t.Fatalf("RequestPayout failed: %v", err)
	}

	// someone else's id must not reach the row
	_, err = svc.CancelPayout(other.ID, request.ID)
	var notFound *common.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError for non-owner, got %v", err)
	}

	cancelled, err := svc.CancelPayout(user.ID, request.ID)
	if err != nil {
		t.Fatalf("CancelPayout failed: %v", err)
	}
	if cancelled.Status != models.PayoutCancelled {
		t.Errorf("Expected CANCELLED, got %s", cancelled.Status)
	}
}

func TestRequestPayoutInvalidAmount(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPayoutService(testDB, nil)

	_, err := svc.RequestPayout(PayoutRequestDTO{UserId: 1, Amount: 0, PaymentMethod: models.PayoutMethodUpi, Details: upiDetails()})
	var validationErr *common.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Code != common.CodeInvalidAmount {
		t.Fatalf("Expected INVALID_AMOUNT, got %v", err)
	}
}
