package dto

import (
	"service-tracker/internal/finance"
)

// DashboardDTO - сводка дашборда плюс текущий период, к которому относятся monthlyStats/yearlyStats.
type DashboardDTO struct {
	finance.DashboardStats
	Period           finance.Period `json:"period"`
	ProfitShareLabel string         `json:"profitShareLabel"`
}

type ReportDTO struct {
	finance.Report
	ProfitShareLabel string `json:"profitShareLabel"`
}
