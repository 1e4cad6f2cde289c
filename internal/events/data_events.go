package events

// DataChangedEvent публикуется после каждой успешной записи в хранилище.
type DataChangedEvent struct {
	Key   string
	Count int
}

// Name - реализуем интерфейс eventbus.Event
func (e DataChangedEvent) Name() string {
	return DataChanged
}

const DataChanged = "data.changed"
