package routes

import (
	"github.com/labstack/echo/v4"

	"service-tracker/internal/controllers"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController) {
	auth := api.Group("/auth")
	auth.POST("/login", authCtrl.Login)
	auth.GET("/settings", authCtrl.Settings)
}
