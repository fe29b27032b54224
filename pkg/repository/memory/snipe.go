package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/msnipe/pkg/domain/interfaces"
	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
)

type snipeRepository struct {
	mu      sync.RWMutex
	records map[types.ChannelID]model.SnipeRecord
}

var _ interfaces.SnipeRepository = &snipeRepository{}

func newSnipeRepository() *snipeRepository {
	return &snipeRepository{
		records: make(map[types.ChannelID]model.SnipeRecord),
	}
}

func (r *snipeRepository) Set(ctx context.Context, channelID types.ChannelID, record model.SnipeRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[channelID] = record
}

func (r *snipeRepository) Get(ctx context.Context, channelID types.ChannelID) *model.SnipeRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[channelID]
	if !ok {
		return nil
	}
	return &record
}
