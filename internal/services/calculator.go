package services

import (
	"math"

	"github.com/naveenreddy007/raju-course--sub000/internal/models"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"
)

// MaxTotalRatePercent caps direct+indirect rates so a misconfigured package
// can never pay out more than half the purchase price.
const MaxTotalRatePercent = 50.0

// Beneficiary is one hop of the referral chain: level 1 is the purchaser's
// referrer, level 2 that referrer's own referrer.
type Beneficiary struct {
	UserId int
	Level  int
}

// CommissionRates are percentage rates loaded from the Package row of the
// purchase being processed. Rates are always explicit inputs here; there is
// no name-keyed fallback table.
type CommissionRates struct {
	Direct   float64
	Indirect float64
}

// CommissionEntry is a computed, not yet persisted, commission.
type CommissionEntry struct {
	UserId       int
	SourceUserId int
	Amount       float64
	Type         string
	Level        int
}

// ValidateRates checks the calculator preconditions. A violation means the
// package is misconfigured and the whole purchase must abort before any
// commission row is written.
func ValidateRates(price float64, rates CommissionRates) error {
	if price <= 0 {
		return common.NewConfigurationError("package price must be positive, got %.2f", price)
	}
	if rates.Direct < 0 || rates.Indirect < 0 {
		return common.NewConfigurationError("commission rates must not be negative (direct=%.2f, indirect=%.2f)", rates.Direct, rates.Indirect)
	}
	if rates.Direct+rates.Indirect > MaxTotalRatePercent {
		return common.NewConfigurationError("combined commission rate %.2f%% exceeds the %.0f%% cap", rates.Direct+rates.Indirect, MaxTotalRatePercent)
	}
	return nil
}

// CalculateCommissions converts resolved beneficiaries into concrete
// commission amounts. Level 1 earns the direct rate, level 2 the indirect
// rate. Amounts round half-up to the nearest whole currency unit so ledger
// sums are exactly reproducible downstream.
//
// Pure function: no I/O, identical inputs always yield identical output.
func CalculateCommissions(beneficiaries []Beneficiary, sourceUserId int, price float64, rates CommissionRates) ([]CommissionEntry, error) {
	if err := ValidateRates(price, rates); err != nil {
		return nil, err
	}

	entries := make([]CommissionEntry, 0, len(beneficiaries))
	for _, b := range beneficiaries {
		var amount float64
		var commissionType string

		switch b.Level {
		case 1:
			amount = roundHalfUp(price * rates.Direct / 100)
			commissionType = models.CommissionDirect
		case 2:
			amount = roundHalfUp(price * rates.Indirect / 100)
			commissionType = models.CommissionIndirect
		default:
			return nil, common.NewConfigurationError("unsupported commission level %d", b.Level)
		}

		entries = append(entries, CommissionEntry{
			UserId:       b.UserId,
			SourceUserId: sourceUserId,
			Amount:       amount,
			Type:         commissionType,
			Level:        b.Level,
		})
	}

	return entries, nil
}

// roundHalfUp rounds to the nearest whole unit with .5 rounding up.
// Amounts here are never negative, so flooring v+0.5 is exact.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
