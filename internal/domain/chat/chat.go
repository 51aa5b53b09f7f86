package chat

import (
	"time"

	"github.com/google/uuid"
)

// HistoryLimit caps how many recent messages a chat history read returns.
const HistoryLimit = 100

type Message struct {
	ID        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"` // base64 data URL
	CreatedAt time.Time `json:"created_at"`
}

func NewMessage(sender, text, image string) Message {
	return Message{
		ID:        uuid.New(),
		Sender:    sender,
		Text:      text,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
}
