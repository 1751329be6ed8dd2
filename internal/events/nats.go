package events

import (
	"encoding/json"

	"auction-engine/utils"

	"github.com/nats-io/nats.go"
)

// NATSSink publishes engine events to a NATS server, one subject per topic.
// Publish failures are logged and dropped: downstream consumers are
// best-effort listeners, never a dependency of the bidding path.
type NATSSink struct {
	conn *nats.Conn
}

// NewNATSSink wraps an established NATS connection.
func NewNATSSink(conn *nats.Conn) *NATSSink {
	return &NATSSink{conn: conn}
}

// Publish marshals the event and sends it on the topic's subject.
func (s *NATSSink) Publish(topic string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		utils.Error("nats sink: failed to marshal event", map[string]any{
			"topic": topic,
			"type":  event.Type,
			"error": err.Error(),
		})
		return
	}
	if err := s.conn.Publish(topic, data); err != nil {
		utils.Warn("nats sink: publish failed", map[string]any{
			"topic": topic,
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}
