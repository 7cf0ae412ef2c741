package helpers

import "golang.org/x/crypto/bcrypt"

// HashOTPCode hashes an OTP code before it is placed in the ledger, so a
// leaked ledger snapshot does not expose live codes.
func HashOTPCode(code string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareOTPCode compares a stored hash with a submitted code
func CompareOTPCode(hash string, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
