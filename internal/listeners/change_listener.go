package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"service-tracker/internal/events"
	"service-tracker/pkg/eventbus"
	"service-tracker/pkg/websocket"
)

// Broadcaster - то, чем listener рассылает уведомления (websocket.Hub).
type Broadcaster interface {
	Broadcast(ctx context.Context, messageType string, payload interface{}) error
}

// ChangeListener рассылает подключенным клиентам уведомление о каждой записи в хранилище,
// чтобы другие открытые окна перечитали данные.
type ChangeListener struct {
	hub    Broadcaster
	logger *zap.Logger
}

func NewChangeListener(hub Broadcaster, logger *zap.Logger) *ChangeListener {
	return &ChangeListener{hub: hub, logger: logger}
}

func (l *ChangeListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.DataChanged, l.Handle)
}

func (l *ChangeListener) Handle(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.DataChangedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", event)
	}
	l.logger.Debug("Данные изменены", zap.String("key", e.Key), zap.Int("count", e.Count))
	return l.hub.Broadcast(ctx, websocket.MessageDataChanged, websocket.DataChangedPayload{Key: e.Key, Count: e.Count})
}
