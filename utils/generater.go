package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var otpRange = big.NewInt(900000)

// GenerateOTP returns a random six digit code in [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// UploadFilename builds a unique stored name for an uploaded file.
func UploadFilename(original string, now time.Time) string {
	base := filepath.Base(original)
	base = strings.ReplaceAll(base, " ", "-")
	if base == "." || base == string(filepath.Separator) {
		base = "file"
	}
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), uuid.NewString(), base)
}
