package interfaces

import (
	"context"

	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
)

// RecentMessageRepository keeps the last N observed messages per channel so
// that a delete notification, which carries only an ID, can be resolved.
type RecentMessageRepository interface {
	// Record appends a message to the channel's buffer. When the buffer grows
	// past its capacity the oldest record is discarded.
	Record(ctx context.Context, channelID types.ChannelID, record model.MessageRecord)

	// TakeByID removes and returns the record with the given ID.
	// Returns nil if the channel has no such record.
	TakeByID(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) *model.MessageRecord

	// List returns the channel's buffered records, oldest first
	List(ctx context.Context, channelID types.ChannelID) []*model.MessageRecord
}
