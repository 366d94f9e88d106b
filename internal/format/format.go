// Package format holds the pt-BR display formatting used across the
// terminal views and the receipt.
package format

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency renders a monetary amount with exactly two decimal places and
// pt-BR separators ("1.234,56"). The currency symbol is left to the
// caller, the original UI prints "R$" by hand.
func Currency(v decimal.Decimal) string {
	f, _ := v.Float64()
	return printer.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// Quantity renders an item quantity without trailing zeros ("2", "1,5").
func Quantity(v decimal.Decimal) string {
	f, _ := v.Float64()
	return printer.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(3)))
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// DateTime renders a timestamp the way the original history view does:
// "2 de janeiro de 2006, 15:04:05".
func DateTime(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d, %02d:%02d:%02d",
		t.Day(), monthNames[t.Month()-1], t.Year(),
		t.Hour(), t.Minute(), t.Second())
}

// DateLabel renders the short date used as a history group header
// ("05/01/2024").
func DateLabel(t time.Time) string {
	return t.Format("02/01/2006")
}
