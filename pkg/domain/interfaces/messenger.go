package interfaces

import (
	"context"

	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
)

// Messenger sends replies to a chat platform
type Messenger interface {
	// SendPlainMessage posts text to the channel
	SendPlainMessage(ctx context.Context, channelID types.ChannelID, text string) error

	// SendFormattedMessage posts a rich message (embed or attachment)
	SendFormattedMessage(ctx context.Context, channelID types.ChannelID, msg *model.FormattedMessage) error
}
