package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/msnipe/pkg/domain/interfaces"
	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/model/slack"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
	slacksvc "github.com/secmon-lab/msnipe/pkg/service/slack"
	"github.com/secmon-lab/msnipe/pkg/utils/logging"
	slackgo "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// SlackUseCases handles Slack-related business logic
type SlackUseCases struct {
	snipe        *SnipeUseCase
	slackService slacksvc.Service
}

// NewSlackUseCases creates a new SlackUseCases instance
func NewSlackUseCases(snipe *SnipeUseCase, slackService slacksvc.Service) *SlackUseCases {
	return &SlackUseCases{
		snipe:        snipe,
		slackService: slackService,
	}
}

// Connect identifies the bot user so that its own messages are never
// answered. It fails when the bot token is rejected.
func (uc *SlackUseCases) Connect(ctx context.Context) error {
	id, err := uc.slackService.AuthTest(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to identify slack bot user")
	}

	uc.snipe.HandleReady(ctx, id.Name, id.UserID)
	return nil
}

// HandleSlackEvent processes Slack Events API events
func (uc *SlackUseCases) HandleSlackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error {
	logger := logging.From(ctx)

	if event.Type != slackevents.CallbackEvent {
		logger.Warn("unsupported slack event type", "type", event.Type)
		return nil
	}

	ev, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		logger.Debug("ignored slack event", "innerType", event.InnerEvent.Type)
		return nil
	}

	switch slack.Classify(ev) {
	case slack.KindPosted:
		return uc.handlePosted(ctx, ev)
	case slack.KindDeleted:
		return uc.handleDeleted(ctx, ev)
	default:
		logger.Debug("ignored slack message subtype", "subtype", ev.SubType)
		return nil
	}
}

func (uc *SlackUseCases) handlePosted(ctx context.Context, ev *slackevents.MessageEvent) error {
	msg := slack.NewMessage(ev)
	if ev.User != "" {
		msg.AuthorName = uc.slackService.GetUserName(ctx, ev.User)
	}

	if err := uc.snipe.HandleMessage(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to handle slack message")
	}
	return nil
}

func (uc *SlackUseCases) handleDeleted(ctx context.Context, ev *slackevents.MessageEvent) error {
	messageID := slack.DeletedMessageID(ev)
	if messageID == "" {
		logging.From(ctx).Warn("message_deleted event without deleted_ts", "channel", ev.Channel)
		return nil
	}

	channelID := types.ChannelID(ev.Channel)
	if err := uc.snipe.HandleMessageDeleted(ctx, channelID, messageID, uc.previousMessageLookup(ev.PreviousMessage)); err != nil {
		return goerr.Wrap(err, "failed to handle slack message deletion")
	}
	return nil
}

// previousMessageLookup serves the copy of the deleted message that Slack
// attaches to message_deleted events.
func (uc *SlackUseCases) previousMessageLookup(prev *slackgo.Msg) interfaces.MessageLookup {
	return interfaces.MessageLookupFunc(func(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) *model.MessageRecord {
		if prev == nil || types.MessageID(prev.Timestamp) != messageID {
			return nil
		}

		msg := slack.NewMessageFromMsg(channelID, prev)
		if prev.User != "" {
			msg.AuthorName = uc.slackService.GetUserName(ctx, prev.User)
		}
		rec := msg.Record()
		return &rec
	})
}
