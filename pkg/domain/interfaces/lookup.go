package interfaces

import (
	"context"

	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
)

// MessageLookup resolves a deleted message ID to its content. Implementations
// may consume the record (local cache) or leave it in place (platform cache).
type MessageLookup interface {
	TakeOrGet(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) *model.MessageRecord
}

// MessageLookupFunc adapts a function to MessageLookup
type MessageLookupFunc func(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) *model.MessageRecord

// TakeOrGet calls f
func (f MessageLookupFunc) TakeOrGet(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) *model.MessageRecord {
	return f(ctx, channelID, messageID)
}
