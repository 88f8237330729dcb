package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"laporan/internal/core"
)

// RoutingKeyLedgerChanged is the routing key ledger owners publish with.
const RoutingKeyLedgerChanged = "ledger.changed"

// LedgerChangedMessage announces that the ledger was modified. Months lists
// the affected "YYYY-MM" keys and may be empty when the owner does not know.
type LedgerChangedMessage struct {
	Source    string    `json:"source"`
	Months    []string  `json:"months,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerChangedMessage creates a message stamped with the current time.
func NewLedgerChangedMessage(source string, months ...core.MonthKey) *LedgerChangedMessage {
	msg := &LedgerChangedMessage{Source: source, Timestamp: time.Now()}
	for _, m := range months {
		msg.Months = append(msg.Months, m.String())
	}
	return msg
}

// ToJSON converts the message to JSON bytes
func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MonthKeys parses the affected months.
func (m *LedgerChangedMessage) MonthKeys() ([]core.MonthKey, error) {
	keys := make([]core.MonthKey, 0, len(m.Months))
	for _, s := range m.Months {
		k, err := core.ParseMonthKey(s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// LedgerChangedMessageFromJSON decodes and validates a message body.
func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if _, err := msg.MonthKeys(); err != nil {
		return nil, fmt.Errorf("invalid months: %w", err)
	}
	return &msg, nil
}
