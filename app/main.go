// Файл: main.go

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"service-tracker/internal/listeners"
	"service-tracker/internal/repositories"
	"service-tracker/internal/routes"
	"service-tracker/internal/services"
	"service-tracker/pkg/config"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/eventbus"
	"service-tracker/pkg/filestorage"
	applogger "service-tracker/pkg/logger"
	appmiddleware "service-tracker/pkg/middleware"
	"service-tracker/pkg/service"
	"service-tracker/pkg/utils"
	"service-tracker/pkg/validation"
	appwebsocket "service-tracker/pkg/websocket"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.App.LogFile)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Хранилище
	store, closeStore, err := repositories.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("не удалось открыть хранилище", zap.Error(err), zap.String("driver", cfg.Store.Driver))
	}
	defer closeStore()

	// 3. Шина событий и websocket-хаб для уведомлений об изменениях
	bus := eventbus.New(logger)
	hub := appwebsocket.NewHub(logger)
	go hub.Run(ctx)
	listeners.NewChangeListener(hub, logger).Register(bus)

	// 4. Рабочее пространство: первичная загрузка данных
	workspace := services.NewWorkspace(
		repositories.NewServiceRecordRepository(store, logger),
		repositories.NewNoteRepository(store, logger),
		repositories.NewMissingPartRepository(store, logger),
		bus,
		cfg.Location(),
		logger,
	)
	if err := workspace.Load(ctx); err != nil {
		// сервер стартует в состоянии error, /api/reload повторит загрузку
		logger.Error("первичная загрузка данных не удалась", zap.Error(err))
	}

	var archive filestorage.FileStorageInterface
	if cfg.App.BackupDir != "" {
		archive, err = filestorage.NewLocalFileStorage(cfg.App.BackupDir)
		if err != nil {
			logger.Fatal("не удалось создать каталог резервных копий", zap.Error(err))
		}
	}

	// 5. Echo и middleware
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.InjectLogger(logger))
	e.Use(appmiddleware.RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))
	e.Validator = validation.New()

	// 6. Роуты
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	routes.InitRouter(e, store, workspace, hub, jwtSvc, archive, cfg, logger)

	// 7. Запуск и корректная остановка
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
	}
}
