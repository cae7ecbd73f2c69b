package events

import (
	"encoding/json"
	"time"
)

const (
	ActionCreated = "entry.created"
	ActionDeleted = "entry.deleted"
)

// EntryEventMessage notifies downstream consumers that an entry was
// created or deleted. It carries only the id and date; consumers read the
// collection themselves if they need the full record.
type EntryEventMessage struct {
	ID        int       `json:"id"`
	Action    string    `json:"action"`
	Date      string    `json:"date,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryEventMessage(id int, action, date string) *EntryEventMessage {
	return &EntryEventMessage{
		ID:        id,
		Action:    action,
		Date:      date,
		Timestamp: time.Now(),
	}
}

func (m *EntryEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryEventMessageFromJSON(data []byte) (*EntryEventMessage, error) {
	var msg EntryEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
