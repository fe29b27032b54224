package memory

import (
	"context"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/secmon-lab/msnipe/pkg/domain/interfaces"
	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
	"github.com/secmon-lab/msnipe/pkg/utils/logging"
)

// channelBuffer is a bounded FIFO of records. Entries are keyed by arrival
// sequence, not by message ID, so a repeated ID is appended like any other
// record. The LRU is only ever read with Peek, so its recency order is the
// arrival order and eviction drops the oldest record.
type channelBuffer struct {
	seq     uint64
	entries *simplelru.LRU[uint64, model.MessageRecord]
}

type recentRepository struct {
	mu       sync.Mutex
	capacity int
	channels map[types.ChannelID]*channelBuffer
}

var _ interfaces.RecentMessageRepository = &recentRepository{}

func newRecentRepository(capacity int) *recentRepository {
	return &recentRepository{
		capacity: capacity,
		channels: make(map[types.ChannelID]*channelBuffer),
	}
}

// buffer returns the channel's buffer, creating it on first use.
// Caller must hold r.mu.
func (r *recentRepository) buffer(channelID types.ChannelID) *channelBuffer {
	if buf, ok := r.channels[channelID]; ok {
		return buf
	}

	onEvict := func(_ uint64, record model.MessageRecord) {
		logging.Default().Debug("recent message evicted",
			"channel_id", channelID,
			"message_id", record.ID,
		)
	}

	// NewLRU only fails on a non-positive size, which New rules out
	entries, err := simplelru.NewLRU[uint64, model.MessageRecord](r.capacity, onEvict)
	if err != nil {
		panic(err)
	}
	buf := &channelBuffer{entries: entries}
	r.channels[channelID] = buf
	return buf
}

func (r *recentRepository) Record(ctx context.Context, channelID types.ChannelID, record model.MessageRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf := r.buffer(channelID)
	buf.seq++
	buf.entries.Add(buf.seq, record)
}

// TakeByID removes the oldest record carrying messageID
func (r *recentRepository) TakeByID(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) *model.MessageRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf, ok := r.channels[channelID]
	if !ok {
		return nil
	}

	for _, key := range buf.entries.Keys() {
		record, ok := buf.entries.Peek(key)
		if !ok || record.ID != messageID {
			continue
		}
		buf.entries.Remove(key)
		return &record
	}

	return nil
}

func (r *recentRepository) List(ctx context.Context, channelID types.ChannelID) []*model.MessageRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf, ok := r.channels[channelID]
	if !ok {
		return []*model.MessageRecord{}
	}

	keys := buf.entries.Keys()
	records := make([]*model.MessageRecord, 0, len(keys))
	for _, key := range keys {
		if record, ok := buf.entries.Peek(key); ok {
			records = append(records, &record)
		}
	}
	return records
}
