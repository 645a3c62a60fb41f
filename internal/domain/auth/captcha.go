package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	CaptchaLength   = 6
	captchaAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateCaptcha draws CaptchaLength characters uniformly from A-Z and 0-9.
func GenerateCaptcha() (string, error) {
	buf := make([]byte, CaptchaLength)
	max := big.NewInt(int64(len(captchaAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw captcha character: %w", err)
		}
		buf[i] = captchaAlphabet[n.Int64()]
	}
	return string(buf), nil
}
