package helpers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenOTPCodeFormat(t *testing.T) {
	sixDigits := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 100; i++ {
		code, err := GenOTPCode()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
	}
}

func TestHashAndCompareOTPCode(t *testing.T) {
	hash, err := HashOTPCode("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.True(t, CompareOTPCode(hash, "123456"))
	assert.False(t, CompareOTPCode(hash, "654321"))
}

func TestKeyLoginOTP(t *testing.T) {
	assert.Equal(t, "login:otp:9876543210", KeyLoginOTP("9876543210"))
}
