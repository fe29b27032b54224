package model

import (
	"time"

	"github.com/secmon-lab/msnipe/pkg/domain/types"
)

// MessageRecord is a message as remembered by the recent message cache.
// It is treated as immutable once created.
type MessageRecord struct {
	ID        types.MessageID
	Author    string // Display name of the author at the time the message was seen
	Content   string
	Timestamp time.Time // Creation time reported by the platform
}

// Snipe converts the record into the summary kept by the snipe store
func (r MessageRecord) Snipe() SnipeRecord {
	return SnipeRecord{
		Author:    r.Author,
		Content:   r.Content,
		Timestamp: r.Timestamp,
	}
}

// SnipeRecord is the most recently deleted message of a channel
type SnipeRecord struct {
	Author    string
	Content   string
	Timestamp time.Time
}

// Message is an inbound message notification from a chat platform
type Message struct {
	ChannelID  types.ChannelID
	ID         types.MessageID
	AuthorID   string
	AuthorName string
	Content    string
	Timestamp  time.Time
}

// Record returns the cacheable part of the message
func (m *Message) Record() MessageRecord {
	return MessageRecord{
		ID:        m.ID,
		Author:    m.AuthorName,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

// FormattedMessage is a rich reply rendered by the platform (Discord embed,
// Slack attachment).
type FormattedMessage struct {
	Title       string
	Body        string
	Timestamp   time.Time
	AccentColor int // 0xRRGGBB
}
