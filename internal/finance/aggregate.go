package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"service-tracker/internal/entities"
	"service-tracker/pkg/constants"
)

// Selector извлекает числовое поле записи.
type Selector func(entities.ServiceRecord) float64

// Revenue - отображаемая выручка (cost, иначе feeCollected).
func Revenue(r entities.ServiceRecord) float64 { return r.DisplayRevenue() }

func Expenses(r entities.ServiceRecord) float64 { return r.Expenses }

// Sum суммирует поле по списку. nil-список дает 0.
func Sum(records []entities.ServiceRecord, sel Selector) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(Amount(sel(r)))
	}
	return total
}

// PeriodStats - суммы за период. Profit считается по суммам периода, а не как среднее по записям.
type PeriodStats struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

func periodStats(records []entities.ServiceRecord) PeriodStats {
	revenue := Sum(records, Revenue)
	expenses := Sum(records, Expenses)
	return PeriodStats{
		Revenue:  revenue,
		Expenses: expenses,
		Profit:   FromTotals(revenue, expenses).NetProfit,
	}
}

// DashboardStats - сводка дашборда по всей коллекции.
type DashboardStats struct {
	TotalServices int             `json:"totalServices"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Profit        decimal.Decimal `json:"profit"`
	MonthlyStats  PeriodStats     `json:"monthlyStats"`
	YearlyStats   PeriodStats     `json:"yearlyStats"`
	StatusCounts  map[string]int  `json:"statusCounts"`
}

// CalculateDashboardStats считает сводку по всем статусам: итоги, текущий месяц и текущий год
// относительно now в зоне loc.
func CalculateDashboardStats(records []entities.ServiceRecord, now time.Time, loc *time.Location) DashboardStats {
	if loc == nil {
		loc = time.UTC
	}
	current := PeriodOf(now, loc)
	total := periodStats(records)

	counts := make(map[string]int, len(constants.Statuses))
	for _, s := range constants.Statuses {
		counts[s] = 0
	}
	for _, r := range records {
		if constants.IsKnownStatus(r.Status) {
			counts[r.Status]++
		}
	}

	return DashboardStats{
		TotalServices: len(records),
		TotalRevenue:  total.Revenue,
		TotalExpenses: total.Expenses,
		Profit:        total.Profit,
		MonthlyStats:  periodStats(FilterByPeriod(records, current, loc)),
		YearlyStats:   periodStats(FilterByPeriod(records, Period{Year: current.Year}, loc)),
		StatusCounts:  counts,
	}
}
