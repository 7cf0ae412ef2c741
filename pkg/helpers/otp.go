package helpers

import (
	"crypto/rand"
	"fmt"
)

// KeyLoginOTP is the Redis key for the pending OTP of a phone number
func KeyLoginOTP(phone string) string {
	return "login:otp:" + phone
}

// GenOTPCode generates a random 6-digit OTP code as a zero-padded string
func GenOTPCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}
