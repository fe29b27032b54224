package usecase

import (
	"context"

	"github.com/secmon-lab/msnipe/pkg/domain/interfaces"
	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
)

// chainLookup tries each lookup in order and returns the first hit
type chainLookup []interfaces.MessageLookup

func (c chainLookup) TakeOrGet(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) *model.MessageRecord {
	for _, lookup := range c {
		if lookup == nil {
			continue
		}
		if record := lookup.TakeOrGet(ctx, channelID, messageID); record != nil {
			return record
		}
	}
	return nil
}
