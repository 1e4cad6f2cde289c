package routes

import (
	"github.com/labstack/echo/v4"

	"service-tracker/internal/controllers"
)

func runReportRouter(
	secureGroup *echo.Group,
	dashboardCtrl *controllers.DashboardController,
	reportCtrl *controllers.ReportController,
) {
	secureGroup.GET("/dashboard", dashboardCtrl.GetDashboardStats)
	secureGroup.GET("/reports", reportCtrl.GetReport)
}
