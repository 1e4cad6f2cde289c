package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-tracker/internal/entities"
)

func rowIDs(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Record.ID
	}
	return out
}

func rowsOf(records ...entities.ServiceRecord) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = NewRow(r, time.UTC)
	}
	return rows
}

func TestSortRows_TurkishCollation(t *testing.T) {
	rows := rowsOf(
		entities.ServiceRecord{ID: "dolap", Address: "dolap"},
		entities.ServiceRecord{ID: "çay", Address: "çay"},
		entities.ServiceRecord{ID: "cuma", Address: "cuma"},
	)

	SortRows(rows, SortByAddress, Asc)
	assert.Equal(t, []string{"cuma", "çay", "dolap"}, rowIDs(rows))

	SortRows(rows, SortByAddress, Desc)
	assert.Equal(t, []string{"dolap", "çay", "cuma"}, rowIDs(rows))
}

func TestSortRows_DottedAndDotlessI(t *testing.T) {
	rows := rowsOf(
		entities.ServiceRecord{ID: "İzmir", Address: "İzmir"},
		entities.ServiceRecord{ID: "iğne", Address: "iğne"},
		entities.ServiceRecord{ID: "ılık", Address: "ılık"},
		entities.ServiceRecord{ID: "Ilgaz", Address: "Ilgaz"},
		entities.ServiceRecord{ID: "hane", Address: "hane"},
	)

	// ı/I идут сразу после h и перед i/İ
	SortRows(rows, SortByAddress, Asc)
	assert.Equal(t, []string{"hane", "Ilgaz", "ılık", "iğne", "İzmir"}, rowIDs(rows))
}

func TestSortRows_StableAndNumeric(t *testing.T) {
	rows := rowsOf(
		entities.ServiceRecord{ID: "a", Cost: 100},
		entities.ServiceRecord{ID: "b", Cost: 50},
		entities.ServiceRecord{ID: "c", Cost: 100},
		entities.ServiceRecord{ID: "d", Cost: 1000},
	)

	SortRows(rows, SortByRevenue, Asc)
	assert.Equal(t, []string{"b", "a", "c", "d"}, rowIDs(rows))

	SortRows(rows, SortByRevenue, Desc)
	assert.Equal(t, []string{"d", "a", "c", "b"}, rowIDs(rows))
}

func TestSortRows_DateAndEmptyKey(t *testing.T) {
	rows := rowsOf(
		entities.ServiceRecord{ID: "mar", CreatedAt: "2024-03-01T10:00:00.000Z"},
		entities.ServiceRecord{ID: "bad", CreatedAt: "???"},
		entities.ServiceRecord{ID: "jan", Date: "2024-01-10"},
	)

	SortRows(rows, "", Asc)
	assert.Equal(t, []string{"mar", "bad", "jan"}, rowIDs(rows))

	SortRows(rows, SortByDate, Asc)
	assert.Equal(t, []string{"bad", "jan", "mar"}, rowIDs(rows))
}

func TestParseSort(t *testing.T) {
	key, ok := ParseSortKey("Revenue")
	assert.True(t, ok)
	assert.Equal(t, SortByRevenue, key)

	_, ok = ParseSortKey("color")
	assert.False(t, ok)

	dir, ok := ParseSortDir("")
	assert.True(t, ok)
	assert.Equal(t, Asc, dir)

	_, ok = ParseSortDir("up")
	assert.False(t, ok)
}

func TestBuildReport(t *testing.T) {
	records := []entities.ServiceRecord{
		{ID: "1", Cost: 1000, Expenses: 400, Status: "completed", CreatedAt: "2024-03-05T10:00:00.000Z", Address: "Üsküdar"},
		{ID: "2", Cost: 500, Expenses: 100, Status: "completed", CreatedAt: "2024-03-20T10:00:00.000Z", Address: "Beşiktaş"},
		{ID: "3", Cost: 900, Status: "ongoing", CreatedAt: "2024-03-07T10:00:00.000Z"},
		{ID: "4", Cost: 200, Status: "completed", CreatedAt: "2024-01-07T10:00:00.000Z"},
		{ID: "5", Cost: 700, Status: "completed", CreatedAt: "2023-03-07T10:00:00.000Z"},
	}

	report := BuildReport(records, ReportQuery{Period: Period{Year: 2024, Month: 3}, Sort: SortByAddress}, time.UTC)

	assert.Equal(t, []string{"2", "1"}, rowIDs(report.Rows))
	assert.Equal(t, 2, report.Monthly.Count)
	assertDecimal(t, "1500", report.Monthly.Revenue)
	assertDecimal(t, "1000", report.Monthly.NetProfit)
	assertDecimal(t, "300", report.Monthly.ProfitShare)
	assertDecimal(t, "700", report.Monthly.Remaining)

	assert.Equal(t, 3, report.Yearly.Count)
	assertDecimal(t, "1700", report.Yearly.Revenue)

	require.Len(t, report.Months, 12)
	assert.Equal(t, 1, report.Months[0].Count)
	assert.Equal(t, 0, report.Months[1].Count)
	assert.Equal(t, 2, report.Months[2].Count)
	assertDecimal(t, "180", report.Rows[1].Breakdown.ProfitShare)
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil, ReportQuery{Period: Period{Year: 2024, Month: 1}}, nil)
	assert.Empty(t, report.Rows)
	assert.Equal(t, 0, report.Monthly.Count)
	assert.True(t, report.Yearly.Remaining.IsZero())
}
