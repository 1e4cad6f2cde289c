package finance

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"service-tracker/internal/entities"
)

type SortKey string

const (
	SortByDate      SortKey = "date"
	SortByAddress   SortKey = "address"
	SortByPhone     SortKey = "phone"
	SortByRevenue   SortKey = "revenue"
	SortByExpenses  SortKey = "expenses"
	SortByProfit    SortKey = "profit"
	SortByRemaining SortKey = "remaining"
)

var sortKeys = []SortKey{SortByDate, SortByAddress, SortByPhone, SortByRevenue, SortByExpenses, SortByProfit, SortByRemaining}

// ParseSortKey возвращает ключ сортировки. Пустая строка - без сортировки (ok=true, key="").
func ParseSortKey(s string) (SortKey, bool) {
	if s == "" {
		return "", true
	}
	key := SortKey(strings.ToLower(s))
	return key, slices.Contains(sortKeys, key)
}

type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

func ParseSortDir(s string) (SortDir, bool) {
	switch strings.ToLower(s) {
	case "", string(Asc):
		return Asc, true
	case string(Desc):
		return Desc, true
	}
	return "", false
}

// Row - строка отчета: запись и ее показатели.
type Row struct {
	Record    entities.ServiceRecord `json:"record"`
	Revenue   decimal.Decimal        `json:"revenue"`
	Expenses  decimal.Decimal        `json:"expenses"`
	Breakdown Breakdown              `json:"breakdown"`

	at time.Time
}

// NewRow считает показатели записи. Нечитаемая дата сортируется как нулевое время.
func NewRow(r entities.ServiceRecord, loc *time.Location) Row {
	at, _ := EffectiveTime(r, loc)
	return Row{
		Record:    r,
		Revenue:   Amount(r.DisplayRevenue()),
		Expenses:  Amount(r.Expenses),
		Breakdown: ForRecord(r),
		at:        at,
	}
}

// Summary - итоги набора записей отчета.
type Summary struct {
	Count       int             `json:"count"`
	Revenue     decimal.Decimal `json:"revenue"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"netProfit"`
	ProfitShare decimal.Decimal `json:"profitShare"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// Summarize считает итоги по суммам набора.
func Summarize(records []entities.ServiceRecord) Summary {
	revenue := Sum(records, Revenue)
	expenses := Sum(records, Expenses)
	b := FromTotals(revenue, expenses)
	return Summary{
		Count:       len(records),
		Revenue:     revenue,
		Expenses:    expenses,
		NetProfit:   b.NetProfit,
		ProfitShare: b.ProfitShare,
		Remaining:   b.Remaining,
	}
}

// SortRows сортирует строки на месте. Строки сравниваются по турецкой колляции,
// числа по значению. Сортировка стабильная, пустой ключ оставляет порядок как есть.
func SortRows(rows []Row, key SortKey, dir SortDir) {
	if key == "" {
		return
	}
	// collate.Collator не потокобезопасен, поэтому создается на каждый вызов
	coll := collate.New(language.Turkish)

	var compare func(a, b Row) int
	switch key {
	case SortByDate:
		compare = func(a, b Row) int { return a.at.Compare(b.at) }
	case SortByAddress:
		compare = func(a, b Row) int {
			return coll.CompareString(a.Record.DisplayAddress(), b.Record.DisplayAddress())
		}
	case SortByPhone:
		compare = func(a, b Row) int {
			return coll.CompareString(a.Record.DisplayPhone(), b.Record.DisplayPhone())
		}
	case SortByRevenue:
		compare = func(a, b Row) int { return a.Revenue.Cmp(b.Revenue) }
	case SortByExpenses:
		compare = func(a, b Row) int { return a.Expenses.Cmp(b.Expenses) }
	case SortByProfit:
		compare = func(a, b Row) int { return a.Breakdown.NetProfit.Cmp(b.Breakdown.NetProfit) }
	case SortByRemaining:
		compare = func(a, b Row) int { return a.Breakdown.Remaining.Cmp(b.Breakdown.Remaining) }
	default:
		return
	}

	if dir == Desc {
		asc := compare
		compare = func(a, b Row) int { return -asc(a, b) }
	}
	slices.SortStableFunc(rows, compare)
}

// ReportQuery - параметры отчета.
type ReportQuery struct {
	Period Period
	Sort   SortKey
	Dir    SortDir
}

// Report - отчет за месяц: строки выбранного месяца, итоги месяца и года, итоги по каждому месяцу года.
type Report struct {
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	Rows    []Row          `json:"rows"`
	Monthly Summary        `json:"monthly"`
	Yearly  Summary        `json:"yearly"`
	Months  []MonthSummary `json:"months"`
}

type MonthSummary struct {
	Month int `json:"month"`
	Summary
}

// BuildReport строит отчет только по завершенным записям.
// Month == 0 дает строки за весь год.
func BuildReport(records []entities.ServiceRecord, q ReportQuery, loc *time.Location) Report {
	if loc == nil {
		loc = time.UTC
	}
	completed := CompletedOnly(records)
	yearly := FilterByPeriod(completed, Period{Year: q.Period.Year}, loc)
	selected := FilterByPeriod(yearly, q.Period, loc)

	rows := make([]Row, len(selected))
	for i, r := range selected {
		rows[i] = NewRow(r, loc)
	}
	SortRows(rows, q.Sort, cmp.Or(q.Dir, Asc))

	months := make([]MonthSummary, 12)
	for m := 1; m <= 12; m++ {
		months[m-1] = MonthSummary{
			Month:   m,
			Summary: Summarize(FilterByPeriod(yearly, Period{Year: q.Period.Year, Month: m}, loc)),
		}
	}

	return Report{
		Year:    q.Period.Year,
		Month:   q.Period.Month,
		Rows:    rows,
		Monthly: Summarize(selected),
		Yearly:  Summarize(yearly),
		Months:  months,
	}
}
