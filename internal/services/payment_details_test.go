package services

import (
	"testing"

	"github.com/naveenreddy007/raju-course--sub000/internal/models"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBankDetails(t *testing.T) {
	valid := PaymentDetails{
		AccountNumber:     "123456789012",
		IfscCode:          "ABCD0123456",
		AccountHolderName: "Asha Kumar",
	}
	assert.NoError(t, ValidatePaymentDetails(models.PayoutMethodBank, valid))

	tooShort := valid
	tooShort.AccountNumber = "12345678"
	assert.Error(t, ValidatePaymentDetails(models.PayoutMethodBank, tooShort))

	tooLong := valid
	tooLong.AccountNumber = "1234567890123456789"
	assert.Error(t, ValidatePaymentDetails(models.PayoutMethodBank, tooLong))

	lowercaseIfsc := valid
	lowercaseIfsc.IfscCode = "abcd0123456"
	assert.Error(t, ValidatePaymentDetails(models.PayoutMethodBank, lowercaseIfsc))

	badIfsc := valid
	badIfsc.IfscCode = "ABCD123456"
	assert.Error(t, ValidatePaymentDetails(models.PayoutMethodBank, badIfsc))

	noName := valid
	noName.AccountHolderName = ""
	assert.Error(t, ValidatePaymentDetails(models.PayoutMethodBank, noName))
}

func TestValidateUpiDetails(t *testing.T) {
	assert.NoError(t, ValidatePaymentDetails(models.PayoutMethodUpi, PaymentDetails{UpiId: "alice@okbank"}))
	assert.NoError(t, ValidatePaymentDetails(models.PayoutMethodUpi, PaymentDetails{UpiId: "a.b_c-1@upi"}))

	assert.Error(t, ValidatePaymentDetails(models.PayoutMethodUpi, PaymentDetails{UpiId: "bad@@id"}))
	assert.Error(t, ValidatePaymentDetails(models.PayoutMethodUpi, PaymentDetails{UpiId: "nohandle"}))
	assert.Error(t, ValidatePaymentDetails(models.PayoutMethodUpi, PaymentDetails{UpiId: "x@bank1"}))
}

func TestValidateWalletDetails(t *testing.T) {
	for _, wt := range []string{"paytm", "phonepe", "googlepay", "amazonpay"} {
		assert.NoError(t, ValidatePaymentDetails(models.PayoutMethodWallet, PaymentDetails{WalletType: wt, WalletId: "9876543210"}))
	}

	assert.Error(t, ValidatePaymentDetails(models.PayoutMethodWallet, PaymentDetails{WalletType: "mobikwik", WalletId: "9876543210"}))
	assert.Error(t, ValidatePaymentDetails(models.PayoutMethodWallet, PaymentDetails{WalletType: "paytm"}))
}

func TestValidateUnknownMethod(t *testing.T) {
	err := ValidatePaymentDetails("cheque", PaymentDetails{})
	var validationErr *common.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, common.CodeInvalidMethod, validationErr.Code)
}
