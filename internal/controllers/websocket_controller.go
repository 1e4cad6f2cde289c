package controllers

import (
	"net/http"

	"service-tracker/pkg/service"
	appwebsocket "service-tracker/pkg/websocket"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketController struct {
	hub         *appwebsocket.Hub
	jwtService  service.JWTService
	authEnabled bool
	logger      *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, jwtService service.JWTService, authEnabled bool, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		hub:         hub,
		jwtService:  jwtService,
		authEnabled: authEnabled,
		logger:      logger,
	}
}

// ServeWs подписывает окно клиента на уведомления об изменениях данных.
// Браузер не умеет передавать заголовок Authorization при upgrade, поэтому токен идет в ?token=.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	if c.authEnabled {
		tokenString := ctx.QueryParam("token")
		if tokenString == "" {
			return ctx.String(http.StatusUnauthorized, "Missing token")
		}
		if _, err := c.jwtService.ValidateToken(tokenString); err != nil {
			return ctx.String(http.StatusUnauthorized, "Invalid token")
		}
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: не удалось улучшить соединение", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn)
	if !c.hub.Register(client) {
		c.logger.Warn("WebSocket: сервер останавливается, соединение закрыто")
		return conn.Close()
	}

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("WebSocket: клиент подключен", zap.Int("clients", c.hub.ClientCount()))
	return nil
}
