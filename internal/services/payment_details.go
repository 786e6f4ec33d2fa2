package services

import (
	"regexp"

	"github.com/naveenreddy007/raju-course--sub000/internal/models"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"
)

// PaymentDetails carries the method-specific fields of a payout request.
// Only the fields for the chosen method are validated; the rest are ignored.
type PaymentDetails struct {
	AccountNumber     string `json:"accountNumber"`
	IfscCode          string `json:"ifscCode"`
	AccountHolderName string `json:"accountHolderName"`
	UpiId             string `json:"upiId"`
	WalletType        string `json:"walletType"`
	WalletId          string `json:"walletId"`
}

var (
	accountNumberPattern = regexp.MustCompile(`^[0-9]{9,18}$`)
	ifscPattern          = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	upiPattern           = regexp.MustCompile(`^[a-zA-Z0-9._-]{2,256}@[a-zA-Z]{2,64}$`)
)

var walletTypes = map[string]bool{
	"paytm":     true,
	"phonepe":   true,
	"googlepay": true,
	"amazonpay": true,
}

// ValidatePaymentDetails checks the details against the rules of the chosen
// payout method before any request row is written.
func ValidatePaymentDetails(method string, d PaymentDetails) error {
	switch method {
	case models.PayoutMethodBank:
		if !accountNumberPattern.MatchString(d.AccountNumber) {
			return common.NewValidationError(common.CodeInvalidDetails, "accountNumber", "account number must be 9 to 18 digits")
		}
		if !ifscPattern.MatchString(d.IfscCode) {
			return common.NewValidationError(common.CodeInvalidDetails, "ifscCode", "invalid IFSC code format")
		}
		if d.AccountHolderName == "" {
			return common.NewValidationError(common.CodeInvalidDetails, "accountHolderName", "account holder name is required")
		}
	case models.PayoutMethodUpi:
		if !upiPattern.MatchString(d.UpiId) {
			return common.NewValidationError(common.CodeInvalidDetails, "upiId", "invalid UPI id format")
		}
	case models.PayoutMethodWallet:
		if !walletTypes[d.WalletType] {
			return common.NewValidationError(common.CodeInvalidDetails, "walletType", "unsupported wallet type %q", d.WalletType)
		}
		if d.WalletId == "" {
			return common.NewValidationError(common.CodeInvalidDetails, "walletId", "wallet id is required")
		}
	default:
		return common.NewValidationError(common.CodeInvalidMethod, "paymentMethod", "unsupported payment method %q", method)
	}
	return nil
}
