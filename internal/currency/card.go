package currency

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// RandomCardNumber generates a 16-digit Visa-style virtual card number with a
// valid Luhn check digit, used as a topup reference for card methods.
func RandomCardNumber() (string, error) {
	var sb strings.Builder
	sb.WriteString("4")
	for range 14 {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("RandomCardNumber: %w", err)
		}
		sb.WriteString(n.String())
	}
	partial := sb.String()
	return partial + fmt.Sprintf("%d", luhnCheckDigit(partial)), nil
}

// luhnCheckDigit computes the digit that completes the partial number. The
// partial's last digit lands in a doubled position once the check digit is
// appended.
func luhnCheckDigit(partial string) int {
	sum := 0
	alternate := true
	for i := len(partial) - 1; i >= 0; i-- {
		digit := int(partial[i] - '0')
		if alternate {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alternate = !alternate
	}
	return (10 - sum%10) % 10
}
