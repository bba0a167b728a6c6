package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventCallbackProcessed = "boi.callback.processed"
	EventCallbackFailed    = "boi.callback.failed"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// CallbackOutcomeEvent is published after every CCMS callback
type CallbackOutcomeEvent struct {
	CallbackID int    `json:"callback_id"`
	Operation  string `json:"operation"`
	Issuer     string `json:"issuer,omitempty"`
	IdNumber   string `json:"id_number,omitempty"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
}
