package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/secmon-lab/msnipe/pkg/domain/interfaces"
	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
	"github.com/secmon-lab/msnipe/pkg/usecase"
	"github.com/secmon-lab/msnipe/pkg/utils/async"
	"github.com/secmon-lab/msnipe/pkg/utils/errutil"
	"github.com/secmon-lab/msnipe/pkg/utils/logging"
)

// Handler translates discordgo gateway events into snipe use case calls
type Handler struct {
	uc *usecase.UseCases
}

// New creates a new Discord event handler
func New(uc *usecase.UseCases) *Handler {
	return &Handler{uc: uc}
}

// Register adds the handlers to the session. discordgo runs each handler in
// its own goroutine.
func (h *Handler) Register(s *discordgo.Session) {
	s.AddHandler(h.onReady)
	s.AddHandler(h.onMessageCreate)
	s.AddHandler(h.onMessageDelete)
}

func eventContext(event, channelID string) context.Context {
	logger := logging.Default().With(
		"event_id", uuid.NewString(),
		"platform", types.PlatformDiscord.String(),
		"event", event,
	)
	if channelID != "" {
		logger = logger.With("channel_id", channelID)
	}
	return logging.With(context.Background(), logger)
}

func (h *Handler) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	ctx := eventContext("ready", "")
	defer async.Recover(ctx)

	if r == nil || r.User == nil {
		return
	}
	h.uc.Snipe.HandleReady(ctx, r.User.Username, r.User.ID)
}

func (h *Handler) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil || m.Author == nil {
		return
	}

	ctx := eventContext("message_create", m.ChannelID)
	defer async.Recover(ctx)

	msg := &model.Message{
		ChannelID:  types.ChannelID(m.ChannelID),
		ID:         types.MessageID(m.ID),
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.Username,
		Content:    m.Content,
		Timestamp:  m.Timestamp,
	}
	if err := h.uc.Snipe.HandleMessage(ctx, msg); err != nil {
		_ = errutil.Handle(ctx, err, "failed to handle discord message")
	}
}

func (h *Handler) onMessageDelete(_ *discordgo.Session, m *discordgo.MessageDelete) {
	if m == nil || m.Message == nil {
		return
	}

	ctx := eventContext("message_delete", m.ChannelID)
	defer async.Recover(ctx)

	err := h.uc.Snipe.HandleMessageDeleted(ctx,
		types.ChannelID(m.ChannelID),
		types.MessageID(m.ID),
		stateLookup(m.BeforeDelete),
	)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to handle discord message deletion")
	}
}

// stateLookup exposes the copy of the deleted message that discordgo's state
// cache attaches to the delete event. It never consumes anything.
func stateLookup(before *discordgo.Message) interfaces.MessageLookup {
	return interfaces.MessageLookupFunc(func(_ context.Context, channelID types.ChannelID, messageID types.MessageID) *model.MessageRecord {
		if before == nil || before.Author == nil {
			return nil
		}
		if before.ID != messageID.String() || before.ChannelID != channelID.String() {
			return nil
		}
		return &model.MessageRecord{
			ID:        messageID,
			Author:    before.Author.Username,
			Content:   before.Content,
			Timestamp: before.Timestamp,
		}
	})
}
