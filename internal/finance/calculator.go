// Package finance считает прибыль по сервисным записям и сводки для дашборда и отчетов.
// Все функции тотальны: пустые списки, отрицательные суммы и отсутствующие поля дают нули, а не ошибки.
package finance

import (
	"math"

	"github.com/shopspring/decimal"

	"service-tracker/internal/entities"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ProfitShareRate - фиксированная доля чистой прибыли (30%), которая отчисляется третьей стороне.
var ProfitShareRate = decimal.RequireFromString("0.30")

// Breakdown - производные показатели по выручке и расходам.
type Breakdown struct {
	NetProfit   decimal.Decimal `json:"netProfit"`
	ProfitShare decimal.Decimal `json:"profitShare"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// Calculate: netProfit = cost - expenses, profitShare = netProfit * 0.30,
// remaining = netProfit - profitShare. Округление не выполняется.
func Calculate(cost, expenses float64) Breakdown {
	return FromTotals(Amount(cost), Amount(expenses))
}

// FromTotals применяет ту же формулу к уже просуммированным значениям.
func FromTotals(revenue, expenses decimal.Decimal) Breakdown {
	net := revenue.Sub(expenses)
	share := net.Mul(ProfitShareRate)
	return Breakdown{
		NetProfit:   net,
		ProfitShare: share,
		Remaining:   net.Sub(share),
	}
}

// ForRecord считает показатели записи по ее отображаемой выручке.
func ForRecord(r entities.ServiceRecord) Breakdown {
	return Calculate(r.DisplayRevenue(), r.Expenses)
}

// Amount переводит float64 в decimal. NaN и бесконечности становятся нулем.
func Amount(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
