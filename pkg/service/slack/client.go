package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
	"github.com/secmon-lab/msnipe/pkg/utils/logging"
	"github.com/slack-go/slack"
)

const (
	// DefaultCacheTTL is the default TTL for user name cache
	DefaultCacheTTL = 10 * time.Minute
)

// cacheEntry holds a cached user name with expiration
type cacheEntry struct {
	name      string
	expiresAt time.Time
}

// client implements Service interface
type client struct {
	api      *slack.Client
	cacheTTL time.Duration
	apiOpts  []slack.Option

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// Option is a functional option for client configuration
type Option func(*client)

// WithCacheTTL sets the TTL for user name cache
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *client) {
		c.cacheTTL = ttl
	}
}

// WithAPIURL overrides the Slack Web API endpoint. The URL must end with "/".
func WithAPIURL(url string) Option {
	return func(c *client) {
		c.apiOpts = append(c.apiOpts, slack.OptionAPIURL(url))
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	c := &client{
		cacheTTL: DefaultCacheTTL,
		cache:    make(map[string]cacheEntry),
	}

	for _, opt := range opts {
		opt(c)
	}
	c.api = slack.New(token, c.apiOpts...)

	return c, nil
}

// SendPlainMessage posts a text message to the channel
func (c *client) SendPlainMessage(ctx context.Context, channelID types.ChannelID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID.String(),
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post message", goerr.V("channel_id", channelID))
	}
	return nil
}

// SendFormattedMessage posts the message as a colored attachment
func (c *client) SendFormattedMessage(ctx context.Context, channelID types.ChannelID, msg *model.FormattedMessage) error {
	if msg == nil {
		return goerr.New("formatted message is nil", goerr.V("channel_id", channelID))
	}

	_, _, err := c.api.PostMessageContext(ctx, channelID.String(),
		slack.MsgOptionAttachments(toAttachment(msg)),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post formatted message", goerr.V("channel_id", channelID))
	}
	return nil
}

func toAttachment(msg *model.FormattedMessage) slack.Attachment {
	attachment := slack.Attachment{
		Color:    fmt.Sprintf("#%06x", msg.AccentColor),
		Fallback: msg.Title,
		Title:    msg.Title,
		Text:     msg.Body,
	}
	if !msg.Timestamp.IsZero() {
		attachment.Ts = json.Number(strconv.FormatInt(msg.Timestamp.Unix(), 10))
	}
	return attachment
}

// GetUserName resolves a user ID to its display name with caching
func (c *client) GetUserName(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}

	now := time.Now()

	c.mu.RLock()
	entry, ok := c.cache[userID]
	c.mu.RUnlock()
	if ok && entry.expiresAt.After(now) {
		return entry.name
	}

	user, err := c.getUserInfo(ctx, userID)
	if err != nil {
		// The caller will use the user ID as name
		logging.From(ctx).Warn("failed to resolve slack user name", "user_id", userID, "error", err)
		return userID
	}

	name := user.Label()
	c.mu.Lock()
	c.cache[userID] = cacheEntry{
		name:      name,
		expiresAt: now.Add(c.cacheTTL),
	}
	c.mu.Unlock()

	return name
}

func (c *client) getUserInfo(ctx context.Context, userID string) (*User, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user info", goerr.V("user_id", userID))
	}

	return &User{
		ID:          user.ID,
		Name:        user.Name,
		RealName:    user.RealName,
		DisplayName: user.Profile.DisplayName,
	}, nil
}

// AuthTest returns the identity of the bot user
func (c *client) AuthTest(ctx context.Context) (*Identity, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call auth.test")
	}

	return &Identity{
		UserID: resp.UserID,
		Name:   resp.User,
		TeamID: resp.TeamID,
		BotID:  resp.BotID,
	}, nil
}
