package routes

import (
	"github.com/labstack/echo/v4"

	"service-tracker/internal/controllers"
)

func runServiceRecordRouter(secureGroup *echo.Group, ctrl *controllers.ServiceRecordController) {
	secureGroup.GET("/services", ctrl.GetServices)
	secureGroup.POST("/services", ctrl.CreateService)
	secureGroup.POST("/services/reorder", ctrl.ReorderServices)
	secureGroup.GET("/services/:id", ctrl.FindService)
	secureGroup.PUT("/services/:id", ctrl.UpdateService)
	secureGroup.PATCH("/services/:id", ctrl.PatchService)
	secureGroup.DELETE("/services/:id", ctrl.DeleteService)
}
