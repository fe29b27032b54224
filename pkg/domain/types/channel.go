package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ChannelID identifies a message stream on a chat platform. All per-channel
// state is keyed by it.
type ChannelID string

// Validate checks if the ChannelID is valid
func (c ChannelID) Validate() error {
	if c == "" {
		return goerr.New("channel ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ChannelID
func (c ChannelID) String() string {
	return string(c)
}

// MessageID identifies a message. It is unique within a channel.
type MessageID string

// Validate checks if the MessageID is valid
func (m MessageID) Validate() error {
	if m == "" {
		return goerr.New("message ID cannot be empty")
	}
	return nil
}

// String returns the string representation of MessageID
func (m MessageID) String() string {
	return string(m)
}
