package event

import (
	"time"
)

type Type string

const (
	TypeOrderUpdated         Type = "order_updated"
	TypeOrderDeleted         Type = "order_deleted"
	TypeChatMessage          Type = "chat_message"
	TypeWorkerOnline         Type = "worker_online"
	TypeWorkerOffline        Type = "worker_offline"
	TypeDistributionComputed Type = "distribution_computed"
)

// Channel is a domain-scoped Postgres NOTIFY channel.
// All event types within a domain share one LISTEN connection.
type Channel string

const (
	ChannelOrder    Channel = "order"
	ChannelChat     Channel = "chat"
	ChannelPresence Channel = "presence"
)

var typeToChannel = map[Type]Channel{
	TypeOrderUpdated:         ChannelOrder,
	TypeOrderDeleted:         ChannelOrder,
	TypeDistributionComputed: ChannelOrder,
	TypeChatMessage:          ChannelChat,
	TypeWorkerOnline:         ChannelPresence,
	TypeWorkerOffline:        ChannelPresence,
}

// Channels lists every domain channel, in subscription order.
var Channels = []Channel{ChannelOrder, ChannelChat, ChannelPresence}

// ChannelFor returns the domain channel for a given event type.
func ChannelFor(t Type) Channel { return typeToChannel[t] }

// Event carries a reference to the changed entity, not its state.
// Key is an order code, message id or worker name depending on Type.
type Event struct {
	Type      Type      `json:"type"`
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType Type, key string) Event {
	return Event{
		Type:      eventType,
		Key:       key,
		Timestamp: time.Now().UTC(),
	}
}
