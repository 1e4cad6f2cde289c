package routes

import (
	"github.com/labstack/echo/v4"

	"service-tracker/internal/controllers"
)

func runSystemRouter(api *echo.Group, healthCtrl *controllers.HealthController, wsCtrl *controllers.WebSocketController) {
	api.GET("/health", healthCtrl.Health)
	// токен проверяется в самом контроллере через ?token=
	api.GET("/ws", wsCtrl.ServeWs)
}

func runStateRouter(secureGroup *echo.Group, healthCtrl *controllers.HealthController) {
	secureGroup.GET("/state", healthCtrl.State)
	secureGroup.POST("/reload", healthCtrl.Reload)
}
