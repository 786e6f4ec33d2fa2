package services

import (
	"testing"

	"github.com/naveenreddy007/raju-course--sub000/internal/models"
)

func TestEnsureProfileCreatesAndUpgrades(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewAffiliateService(testDB)
	user := seedUser(t, "upgrade@test.com", nil)

	silver := seedPackage(t, models.PackageSilver, 2950, 15, 5)
	gold := seedPackage(t, models.PackageGold, 5950, 20, 7.5)

	first, err := svc.EnsureProfile(testDB, user.ID, &silver)
	if err != nil {
		t.Fatalf("EnsureProfile failed: %v", err)
	}
	if len(first.ReferralCode) != 8 {
		t.Errorf("Expected 8-char referral code, got %q", first.ReferralCode)
	}
	if first.PackageType != models.PackageSilver || first.DirectRate != 15 {
		t.Errorf("Silver terms not snapshotted: %+v", first)
	}

	// upgrade re-snapshots terms but keeps the referral code
	second, err := svc.EnsureProfile(testDB, user.ID, &gold)
	if err != nil {
		t.Fatalf("EnsureProfile upgrade failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected same profile row, got %d and %d", first.ID, second.ID)
	}
	if second.ReferralCode != first.ReferralCode {
		t.Errorf("Referral code changed on upgrade: %q vs %q", first.ReferralCode, second.ReferralCode)
	}
	if second.PackageType != models.PackageGold || second.DirectRate != 20 || second.IndirectRate != 7.5 {
		t.Errorf("Gold terms not snapshotted: %+v", second)
	}
}

func TestRefreshBalance(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewAffiliateService(testDB)
	user := seedUser(t, "refresh@test.com", nil)
	seedAffiliate(t, user.ID)

	seedCommission(t, user.ID, 8101, 700, models.CommissionPaid)
	seedCommission(t, user.ID, 8102, 300, models.CommissionPending)
	seedPayout(t, user.ID, 100, models.PayoutCompleted)
	seedPayout(t, user.ID, 150, models.PayoutProcessing)

	if err := svc.RefreshBalance(user.ID); err != nil {
		t.Fatalf("RefreshBalance failed: %v", err)
	}

	var aff models.Affiliate
	testDB.Where("user_id = ?", user.ID).First(&aff)

	// 700 paid - 100 withdrawn - 150 in flight = 450; pending commissions excluded
	if aff.CurrentBalance != 450 {
		t.Errorf("Expected cached balance 450, got %f", aff.CurrentBalance)
	}
	if aff.TotalWithdrawn != 100 {
		t.Errorf("Expected total withdrawn 100, got %f", aff.TotalWithdrawn)
	}
}

func TestRefreshBalanceFloorsAtZero(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewAffiliateService(testDB)
	user := seedUser(t, "floor@test.com", nil)
	seedAffiliate(t, user.ID)

	seedCommission(t, user.ID, 8103, 100, models.CommissionPaid)
	seedPayout(t, user.ID, 300, models.PayoutCompleted)

	if err := svc.RefreshBalance(user.ID); err != nil {
		t.Fatalf("RefreshBalance failed: %v", err)
	}

	var aff models.Affiliate
	testDB.Where("user_id = ?", user.ID).First(&aff)
	if aff.CurrentBalance != 0 {
		t.Errorf("Expected balance floored at 0, got %f", aff.CurrentBalance)
	}
}
