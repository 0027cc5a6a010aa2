package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	// OTPExpiration is the default validity window for issued codes.
	OTPExpiration = 15 * time.Minute

	otpMin   = 100000
	otpRange = 900000
)

// GenerateOTPCode returns a 6-digit code drawn uniformly from
// [100000, 999999] using the crypto source.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}
