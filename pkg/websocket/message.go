package websocket

import "time"

// Envelope - конверт сообщения. Type подсказывает клиенту, что перечитать.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

const MessageDataChanged = "data.changed"

// DataChangedPayload - какой ключ хранилища изменился и сколько в нем теперь элементов.
type DataChangedPayload struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}
