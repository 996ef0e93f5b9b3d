package chat

import "github.com/jorkle/chatscreen/internal/models"

// Log is the append-only chat timeline. The zero value is an empty log.
//
// A Log is a value: Append returns a new Log and never touches the backing
// array of the receiver, so earlier snapshots stay valid.
type Log struct {
	entries []models.Message
}

// NewLog returns a log holding msgs in order
func NewLog(msgs ...models.Message) Log {
	var l Log
	for _, m := range msgs {
		l = l.Append(m)
	}
	return l
}

// Append adds m at the tail
func (l Log) Append(m models.Message) Log {
	n := len(l.entries)
	return Log{entries: append(l.entries[:n:n], m)}
}

// All returns the messages in insertion order. The slice is a copy.
func (l Log) All() []models.Message {
	out := make([]models.Message, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of messages
func (l Log) Len() int {
	return len(l.entries)
}

// Find returns the message with the given id
func (l Log) Find(id string) (models.Message, bool) {
	for _, m := range l.entries {
		if m.ID == id {
			return m, true
		}
	}
	return models.Message{}, false
}

// LastOfKind returns the newest message of kind k
func (l Log) LastOfKind(k models.MessageKind) (models.Message, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Kind() == k {
			return l.entries[i], true
		}
	}
	return models.Message{}, false
}
