package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-tracker/internal/controllers"
	"service-tracker/internal/repositories"
	"service-tracker/internal/services"
	"service-tracker/pkg/config"
	"service-tracker/pkg/filestorage"
	"service-tracker/pkg/middleware"
	"service-tracker/pkg/service"
	appwebsocket "service-tracker/pkg/websocket"
)

// InitRouter собирает сервисы и контроллеры поверх готового рабочего пространства.
// archive может быть nil, тогда копии экспорта не сохраняются.
func InitRouter(
	e *echo.Echo,
	store repositories.StoreInterface,
	workspace *services.Workspace,
	hub *appwebsocket.Hub,
	jwtSvc service.JWTService,
	archive filestorage.FileStorageInterface,
	cfg *config.Config,
	logger *zap.Logger,
) {
	logger.Info("InitRouter: Начало создания маршрутов")

	timeout := cfg.Server.RequestTimeout
	api := e.Group("/api")

	// --- 1. СЕРВИСЫ ---
	authService := services.NewAuthService(cfg.Auth.PinHash, jwtSvc, logger)
	serviceRecordService := services.NewServiceRecordService(workspace, logger)
	noteService := services.NewNoteService(workspace, logger)
	missingPartService := services.NewMissingPartService(workspace, logger)
	dashboardService := services.NewDashboardService(workspace, logger)
	reportService := services.NewReportService(workspace, logger)
	backupService := services.NewBackupService(workspace, store, archive, logger)

	authMW := middleware.NewAuthMiddleware(jwtSvc, authService.Enabled(), logger)
	if !authService.Enabled() {
		logger.Warn("AUTH_PIN_HASH не задан, вход отключен и все маршруты открыты")
	}

	// --- 2. КОНТРОЛЛЕРЫ ---
	healthCtrl := controllers.NewHealthController(workspace, store, timeout, logger)
	authCtrl := controllers.NewAuthController(authService, logger)
	wsCtrl := controllers.NewWebSocketController(hub, jwtSvc, authService.Enabled(), logger)

	// --- 3. РОУТЕРЫ ---
	runSystemRouter(api, healthCtrl, wsCtrl)
	runAuthRouter(api, authCtrl)

	secureGroup := api.Group("", authMW.Auth)
	runStateRouter(secureGroup, healthCtrl)
	runServiceRecordRouter(secureGroup, controllers.NewServiceRecordController(serviceRecordService, timeout, logger))
	runNoteRouter(secureGroup, controllers.NewNoteController(noteService, missingPartService, timeout, logger))
	runReportRouter(secureGroup,
		controllers.NewDashboardController(dashboardService, timeout, logger),
		controllers.NewReportController(reportService, workspace.Location(), timeout, logger),
	)
	runBackupRouter(secureGroup, controllers.NewBackupController(backupService, timeout, logger))

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}
