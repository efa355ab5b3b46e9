package chat

import "time"

const MaxContentLen = 2000

// Message es un mensaje directo entre dos usuarios.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	Content    string
	IsRead     bool
	Timestamp  time.Time
}
