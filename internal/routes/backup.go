package routes

import (
	"github.com/labstack/echo/v4"

	"service-tracker/internal/controllers"
)

func runBackupRouter(secureGroup *echo.Group, ctrl *controllers.BackupController) {
	secureGroup.GET("/backup/export", ctrl.Export)
	secureGroup.POST("/backup/import", ctrl.Import)
}
