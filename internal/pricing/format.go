package pricing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatUSD renders an amount as "$1,080 USD". Fractional amounts keep two decimals.
func FormatUSD(amount float64) string {
	p := message.NewPrinter(language.AmericanEnglish)
	if amount == math.Trunc(amount) {
		return p.Sprintf("$%d %s", int64(amount), Currency)
	}
	return p.Sprintf("$%.2f %s", amount, Currency)
}
