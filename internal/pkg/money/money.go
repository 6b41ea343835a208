// Package money formats amounts in Brazilian reais.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL renders v as "R$ 1.234,56"; negative values get a leading minus.
func BRL(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "R$ " + printer.Sprintf("%.2f", math.Round(v*100)/100)
}

// Percent renders a ratio in [0,1] as "42,5%".
func Percent(ratio float64) string {
	return printer.Sprintf("%.1f%%", ratio*100)
}
