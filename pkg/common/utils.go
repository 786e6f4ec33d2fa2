package common

import (
	"math/rand"
	"time"
)

const codeCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferralCode returns an 8-character affiliate referral code.
// Uniqueness is enforced by the database; callers retry on collision.
func GenerateReferralCode() string {
	return randomCode(8)
}

// GenerateTrxNo returns a 7-character reference for internal ledger entries.
func GenerateTrxNo() string {
	return randomCode(7)
}

func randomCode(n int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	result := make([]byte, n)
	for i := range result {
		result[i] = codeCharacters[r.Intn(len(codeCharacters))]
	}
	return string(result)
}
