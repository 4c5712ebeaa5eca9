// Package currency holds small display and reference-number helpers shared by
// the gateway surfaces.
package currency

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders a numeric string as a rupiah display amount, rounded
// to whole units. Unparseable input renders as zero rather than failing.
func FormatRupiah(digit string) string {
	d, err := decimal.NewFromString(digit)
	if err != nil {
		return "Rp 0"
	}
	return "Rp." + d.Round(0).String()
}

// FormatRupiahAmount renders a minimum-unit amount for log and display use.
func FormatRupiahAmount(amount int64) string {
	return FormatRupiah(strconv.FormatInt(amount, 10))
}
