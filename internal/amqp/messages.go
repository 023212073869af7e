package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LedgerSavedMessage announces that a user's ledger file was overwritten.
// It carries no row data; the worker reloads the CSV, which is the source
// of truth, so stale or duplicate messages are harmless.
type LedgerSavedMessage struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Rows      int       `json:"rows"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerSavedMessage(username string, rows int) *LedgerSavedMessage {
	return &LedgerSavedMessage{
		ID:        uuid.NewString(),
		Username:  username,
		Rows:      rows,
		Timestamp: time.Now(),
	}
}

func (m *LedgerSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerSavedMessageFromJSON(data []byte) (*LedgerSavedMessage, error) {
	var msg LedgerSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
