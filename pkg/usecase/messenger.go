package usecase

import (
	"context"

	"github.com/secmon-lab/msnipe/pkg/domain/interfaces"
	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
	"github.com/secmon-lab/msnipe/pkg/utils/logging"
)

// discardMessenger is used when no platform messenger is configured. Replies
// only show up in the log.
type discardMessenger struct{}

var _ interfaces.Messenger = &discardMessenger{}

func (m *discardMessenger) SendPlainMessage(ctx context.Context, channelID types.ChannelID, text string) error {
	logging.From(ctx).Debug("discarding plain message", "channel_id", channelID, "text", text)
	return nil
}

func (m *discardMessenger) SendFormattedMessage(ctx context.Context, channelID types.ChannelID, msg *model.FormattedMessage) error {
	logging.From(ctx).Debug("discarding formatted message", "channel_id", channelID, "title", msg.Title)
	return nil
}
