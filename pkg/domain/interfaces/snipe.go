package interfaces

import (
	"context"

	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
)

// SnipeRepository holds the most recently deleted message per channel
type SnipeRepository interface {
	// Set overwrites the channel's record. Last delete wins.
	Set(ctx context.Context, channelID types.ChannelID, record model.SnipeRecord)

	// Get returns the channel's record, or nil if nothing was deleted yet
	Get(ctx context.Context, channelID types.ChannelID) *model.SnipeRecord
}
