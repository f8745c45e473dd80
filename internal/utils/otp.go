package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/inc-tasks/task-api/internal/constants"
)

var otpSpan = big.NewInt(constants.OTPMax - constants.OTPMin + 1)

// GenerateOTP returns a six digit code drawn uniformly from [OTPMin, OTPMax]
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpan)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+constants.OTPMin, 10), nil
}
