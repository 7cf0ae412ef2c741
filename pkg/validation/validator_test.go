package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,phone10"`
	OTP   string `json:"otp" binding:"omitempty,otp6"`
}

func validate(t *testing.T, v any) error {
	t.Helper()
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return engine.Struct(v)
}

func TestPhoneAndOTPAliases(t *testing.T) {
	Init()

	assert.NoError(t, validate(t, loginPayload{Name: "Ravi", Phone: "9876543210", OTP: "123456"}))
	assert.Error(t, validate(t, loginPayload{Name: "Ravi", Phone: "12345"}))
	assert.Error(t, validate(t, loginPayload{Name: "Ravi", Phone: "98765abcde"}))
	assert.Error(t, validate(t, loginPayload{Name: "Ravi", Phone: "9876543210", OTP: "12"}))
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	Init()

	err := validate(t, loginPayload{Phone: "12345"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a 10-digit number", details["phone"])
}

func TestToDetailsNilError(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
