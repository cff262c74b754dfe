package util

import (
	"crypto/rand"
	"math/big"
)

// Unambiguous uppercase alphabet for human-entered codes (no 0/O, 1/I).
const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateDiscountCode generates a random discount code of the given length
func GenerateDiscountCode(length int) (string, error) {
	if length <= 0 {
		length = 8
	}

	code := make([]byte, length)
	max := big.NewInt(int64(len(codeCharset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = codeCharset[n.Int64()]
	}
	return string(code), nil
}
