package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"service-tracker/internal/dto"
	"service-tracker/internal/finance"
	"service-tracker/internal/services"
	"service-tracker/pkg/constants"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	loc           *time.Location
	timeout       time.Duration
	logger        *zap.Logger
}

// loc - зона приложения, в ней форматируются даты строк xlsx.
func NewReportController(reportService services.ReportServiceInterface, loc *time.Location, timeout time.Duration, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, loc: loc, timeout: timeout, logger: logger}
}

func (c *ReportController) GetReport(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	query, format, err := c.parseFilters(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Debug("Запрос на отчет с фильтрами", zap.Any("query", query), zap.String("format", format))

	report, err := c.reportService.GetReport(reqCtx, query)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, report)
	}
	return utils.SuccessResponse(ctx, report, "Отчет успешно сформирован", http.StatusOK)
}

func (c *ReportController) parseFilters(ctx echo.Context) (finance.ReportQuery, string, error) {
	var q finance.ReportQuery
	format := strings.ToLower(ctx.QueryParam("format"))
	if format != "" && format != "json" && format != "xlsx" {
		return q, "", apperrors.NewBadRequestError("Формат должен быть json или xlsx")
	}

	parseInt := func(name string) (int, error) {
		raw := ctx.QueryParam(name)
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, apperrors.NewHttpError(http.StatusBadRequest, "Неверный параметр "+name, err, map[string]interface{}{name: raw})
		}
		return n, nil
	}

	year, err := parseInt("year")
	if err != nil {
		return q, "", err
	}
	month, err := parseInt("month")
	if err != nil {
		return q, "", err
	}
	q.Period = finance.Period{Year: year, Month: month}

	sortKey, ok := finance.ParseSortKey(ctx.QueryParam("sort"))
	if !ok {
		return q, "", apperrors.NewHttpError(http.StatusBadRequest, "Неизвестное поле сортировки", apperrors.ErrBadRequest,
			map[string]interface{}{"sort": ctx.QueryParam("sort")})
	}
	dir, ok := finance.ParseSortDir(ctx.QueryParam("dir"))
	if !ok {
		return q, "", apperrors.NewBadRequestError("Направление сортировки должно быть asc или desc")
	}
	q.Sort, q.Dir = sortKey, dir

	return q, format, nil
}

var reportHeaders = []string{
	"№", "Tarih", "Adres", "Telefon", "Ücret", "Masraf", "Net Kâr", "Kâr Payı (" + constants.ProfitShareLabel + ")", "Kalan",
}

func rowToSlice(i int, row finance.Row, loc *time.Location) []interface{} {
	date := row.Record.CreatedAt
	if t, ok := finance.EffectiveTime(row.Record, loc); ok {
		date = t.Format(constants.DisplayDateFmt)
	}
	return []interface{}{
		i + 1, date, row.Record.DisplayAddress(), row.Record.DisplayPhone(),
		row.Revenue.InexactFloat64(), row.Expenses.InexactFloat64(),
		row.Breakdown.NetProfit.InexactFloat64(), row.Breakdown.ProfitShare.InexactFloat64(), row.Breakdown.Remaining.InexactFloat64(),
	}
}

func summaryRows(title string, s finance.Summary) [][]interface{} {
	return [][]interface{}{
		{title},
		{"Kayıt", s.Count},
		{"Gelir", utils.FormatMoney(s.Revenue)},
		{"Gider", utils.FormatMoney(s.Expenses)},
		{"Net Kâr", utils.FormatMoney(s.NetProfit)},
		{"Kâr Payı (" + constants.ProfitShareLabel + ")", utils.FormatMoney(s.ProfitShare)},
		{"Kalan", utils.FormatMoney(s.Remaining)},
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, report *dto.ReportDTO) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Rapor"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "I1", style)

	for i, row := range report.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := rowToSlice(i, row, c.loc)
		f.SetSheetRow(sheet, cell, &values)
	}
	f.SetColWidth(sheet, "B", "B", 12)
	f.SetColWidth(sheet, "C", "C", 40)
	f.SetColWidth(sheet, "D", "D", 16)
	f.SetColWidth(sheet, "E", "I", 14)

	summary := "Özet"
	f.NewSheet(summary)
	line := 1
	blocks := [][][]interface{}{
		summaryRows(fmt.Sprintf("Ay %02d.%d", report.Month, report.Year), report.Monthly),
		summaryRows(fmt.Sprintf("Yıl %d", report.Year), report.Yearly),
	}
	for _, block := range blocks {
		for _, values := range block {
			cell, _ := excelize.CoordinatesToCellName(1, line)
			f.SetSheetRow(summary, cell, &values)
			line++
		}
		line++
	}
	f.SetColWidth(summary, "A", "B", 20)

	fileName := fmt.Sprintf("rapor_%d_%02d.xlsx", report.Year, report.Month)
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
