package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/msnipe/pkg/domain/interfaces"
	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/model/config"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
	"github.com/secmon-lab/msnipe/pkg/utils/errutil"
	"github.com/secmon-lab/msnipe/pkg/utils/logging"
)

// SnipeUseCase records observed messages, resolves deletions and answers
// the ping and snipe commands for one chat platform.
type SnipeUseCase struct {
	repo      interfaces.Repository
	messenger interfaces.Messenger
	cfg       *config.BotConfig

	mu        sync.RWMutex
	botUserID string
}

// NewSnipeUseCase creates a new SnipeUseCase instance
func NewSnipeUseCase(repo interfaces.Repository, messenger interfaces.Messenger, cfg *config.BotConfig) *SnipeUseCase {
	return &SnipeUseCase{
		repo:      repo,
		messenger: messenger,
		cfg:       cfg,
	}
}

// HandleReady is called once the gateway session is established. botUserID
// is used to ignore commands sent by the bot itself.
func (uc *SnipeUseCase) HandleReady(ctx context.Context, botName, botUserID string) {
	uc.mu.Lock()
	uc.botUserID = botUserID
	uc.mu.Unlock()

	logging.From(ctx).Info("bot is connected", "bot_name", botName, "bot_user_id", botUserID)
}

func (uc *SnipeUseCase) isSelf(authorID string) bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.botUserID != "" && uc.botUserID == authorID
}

// HandleMessage records the message in the recent message cache and runs
// the command it carries, if any.
func (uc *SnipeUseCase) HandleMessage(ctx context.Context, msg *model.Message) error {
	if msg == nil {
		return goerr.New("message is nil")
	}
	if err := msg.ChannelID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid message", goerr.V("message_id", msg.ID))
	}
	if err := msg.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid message", goerr.V("channel_id", msg.ChannelID))
	}

	uc.repo.Recent().Record(ctx, msg.ChannelID, msg.Record())

	if uc.isSelf(msg.AuthorID) {
		return nil
	}

	switch uc.parseCommand(msg.Content) {
	case commandPing:
		uc.sendPlain(ctx, msg.ChannelID, uc.cfg.PongReply)
	case commandSnipe:
		uc.HandleSnipeQuery(ctx, msg.ChannelID)
	}

	return nil
}

// HandleMessageDeleted resolves the deleted message, first from the recent
// message cache and then from fallback, and stores it as the channel's
// snipe. fallback may be nil. Unresolved deletions are only logged.
func (uc *SnipeUseCase) HandleMessageDeleted(ctx context.Context, channelID types.ChannelID, messageID types.MessageID, fallback interfaces.MessageLookup) error {
	if err := channelID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid delete notification", goerr.V("message_id", messageID))
	}

	logger := logging.From(ctx)

	// Lock order: recent cache lock is released before the snipe store lock is taken
	lookup := chainLookup{
		interfaces.MessageLookupFunc(uc.repo.Recent().TakeByID),
		fallback,
	}
	record := lookup.TakeOrGet(ctx, channelID, messageID)
	if record == nil {
		logger.Info("message deleted but not found in cache",
			"channel_id", channelID,
			"message_id", messageID,
		)
		return nil
	}

	uc.repo.Snipe().Set(ctx, channelID, record.Snipe())

	logger.Info("message sniped",
		"channel_id", channelID,
		"message_id", messageID,
		"author", record.Author,
		"content_length", len(record.Content),
	)

	return nil
}

// HandleSnipeQuery replies with the channel's most recently deleted message
// or with the "nothing to snipe" reply. It never modifies state.
func (uc *SnipeUseCase) HandleSnipeQuery(ctx context.Context, channelID types.ChannelID) {
	record := uc.repo.Snipe().Get(ctx, channelID)
	if record == nil {
		uc.sendPlain(ctx, channelID, uc.cfg.NothingReply)
		return
	}

	msg := formatSnipe(uc.cfg, record)
	if err := uc.messenger.SendFormattedMessage(ctx, channelID, msg); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to send snipe", goerr.V("channel_id", channelID)), "failed to send reply")
	}
}

func (uc *SnipeUseCase) sendPlain(ctx context.Context, channelID types.ChannelID, text string) {
	if err := uc.messenger.SendPlainMessage(ctx, channelID, text); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to send message", goerr.V("channel_id", channelID)), "failed to send reply")
	}
}
