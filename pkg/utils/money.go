package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatMoney форматирует сумму по-турецки: 1.234,50 ₺
func FormatMoney(amount decimal.Decimal) string {
	p := message.NewPrinter(language.Turkish)
	f, _ := amount.Round(2).Float64()
	return p.Sprintf("%.2f ₺", f)
}
