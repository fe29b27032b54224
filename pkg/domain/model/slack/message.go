package slack

import (
	"strconv"
	"strings"
	"time"

	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
	slackgo "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// EventKind classifies a Slack message event
type EventKind int

const (
	// KindIgnored events are neither new messages nor deletions (edits, joins, ...)
	KindIgnored EventKind = iota
	KindPosted
	KindDeleted
)

const subtypeDeleted = "message_deleted"

// subtypes that carry a newly posted, user visible message
var postedSubtypes = map[string]bool{
	"":                 true,
	"bot_message":      true,
	"file_share":       true,
	"me_message":       true,
	"thread_broadcast": true,
}

// Classify returns what the message event means for the bot
func Classify(ev *slackevents.MessageEvent) EventKind {
	if ev == nil {
		return KindIgnored
	}
	if ev.SubType == subtypeDeleted {
		return KindDeleted
	}
	if postedSubtypes[ev.SubType] {
		return KindPosted
	}
	return KindIgnored
}

// AuthorID returns the user ID of the author, or the bot ID for bot messages
func AuthorID(ev *slackevents.MessageEvent) string {
	if ev.User != "" {
		return ev.User
	}
	return ev.BotID
}

// NewMessage converts a posted message event into the domain Message.
// AuthorName defaults to the author ID and is resolved later by the caller.
func NewMessage(ev *slackevents.MessageEvent) *model.Message {
	if ev == nil {
		return nil
	}

	name := AuthorID(ev)
	if ev.User == "" && ev.Username != "" {
		name = ev.Username
	}

	return &model.Message{
		ChannelID:  types.ChannelID(ev.Channel),
		ID:         types.MessageID(ev.TimeStamp),
		AuthorID:   AuthorID(ev),
		AuthorName: name,
		Content:    ev.Text,
		Timestamp:  ParseTimestamp(ev.TimeStamp),
	}
}

// NewMessageFromMsg converts a message attached to another event, such as
// the previous_message of a deletion, into the domain Message. Attached
// messages carry no channel, so channelID is given by the caller.
func NewMessageFromMsg(channelID types.ChannelID, msg *slackgo.Msg) *model.Message {
	if msg == nil {
		return nil
	}

	authorID := msg.User
	if authorID == "" {
		authorID = msg.BotID
	}
	name := authorID
	if msg.User == "" && msg.Username != "" {
		name = msg.Username
	}

	return &model.Message{
		ChannelID:  channelID,
		ID:         types.MessageID(msg.Timestamp),
		AuthorID:   authorID,
		AuthorName: name,
		Content:    msg.Text,
		Timestamp:  ParseTimestamp(msg.Timestamp),
	}
}

// DeletedMessageID returns the ts of the deleted message: deleted_ts, or the
// ts of previous_message when deleted_ts is absent.
func DeletedMessageID(ev *slackevents.MessageEvent) types.MessageID {
	if ev == nil {
		return ""
	}
	if ev.DeletedTimeStamp != "" {
		return types.MessageID(ev.DeletedTimeStamp)
	}
	if ev.PreviousMessage != nil {
		return types.MessageID(ev.PreviousMessage.Timestamp)
	}
	return ""
}

// ParseTimestamp converts a Slack ts ("1700000000.000100") to time.Time.
// Malformed values yield the zero time.
func ParseTimestamp(ts string) time.Time {
	sec, frac, _ := strings.Cut(ts, ".")
	s, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return time.Time{}
	}

	var micro int64
	if frac != "" {
		if len(frac) > 6 {
			frac = frac[:6]
		}
		frac += strings.Repeat("0", 6-len(frac))
		micro, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return time.Time{}
		}
	}

	return time.Unix(s, micro*int64(time.Microsecond)).UTC()
}
