package discord

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/model/config"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
)

// Intents required to observe message content in guild channels and DMs.
// IntentsGuilds fills the state with channels so it can keep messages.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// api is the subset of discordgo.Session used to send messages
type api interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Client wraps a discordgo session and implements interfaces.Messenger
type Client struct {
	session      *discordgo.Session
	api          api
	fallbackSize int
}

// Option is a functional option for client configuration
type Option func(*Client)

// WithFallbackSize sets how many messages discordgo's state cache keeps per
// channel. The state cache is the fallback lookup for deleted messages.
func WithFallbackSize(n int) Option {
	return func(c *Client) {
		c.fallbackSize = n
	}
}

// New creates a Discord client with the provided bot token. The gateway
// connection is not opened until Open is called.
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, goerr.New("Discord bot token is required")
	}
	if !strings.HasPrefix(token, "Bot ") {
		token = "Bot " + token
	}

	session, err := discordgo.New(token)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create discord session")
	}

	c := &Client{
		session:      session,
		api:          session,
		fallbackSize: config.DefaultFallbackSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	session.Identify.Intents = Intents
	session.StateEnabled = true
	if c.fallbackSize < 0 {
		c.fallbackSize = 0
	}
	session.State.MaxMessageCount = c.fallbackSize

	return c, nil
}

// Session returns the underlying discordgo session for handler registration
func (c *Client) Session() *discordgo.Session {
	return c.session
}

// Open connects to the Discord gateway
func (c *Client) Open() error {
	if err := c.session.Open(); err != nil {
		return goerr.Wrap(err, "failed to open discord gateway")
	}
	return nil
}

// Close disconnects from the Discord gateway
func (c *Client) Close() error {
	if err := c.session.Close(); err != nil {
		return goerr.Wrap(err, "failed to close discord gateway")
	}
	return nil
}

// SendPlainMessage sends a text message to the channel
func (c *Client) SendPlainMessage(ctx context.Context, channelID types.ChannelID, text string) error {
	if _, err := c.api.ChannelMessageSend(channelID.String(), text, discordgo.WithContext(ctx)); err != nil {
		return goerr.Wrap(err, "failed to send discord message", goerr.V("channel_id", channelID))
	}
	return nil
}

// SendFormattedMessage sends the message as an embed
func (c *Client) SendFormattedMessage(ctx context.Context, channelID types.ChannelID, msg *model.FormattedMessage) error {
	if msg == nil {
		return goerr.New("formatted message is nil", goerr.V("channel_id", channelID))
	}

	if _, err := c.api.ChannelMessageSendEmbed(channelID.String(), toEmbed(msg), discordgo.WithContext(ctx)); err != nil {
		return goerr.Wrap(err, "failed to send discord embed", goerr.V("channel_id", channelID))
	}
	return nil
}

func toEmbed(msg *model.FormattedMessage) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Author:      &discordgo.MessageEmbedAuthor{Name: msg.Title},
		Description: msg.Body,
		Color:       msg.AccentColor,
	}
	if !msg.Timestamp.IsZero() {
		embed.Timestamp = msg.Timestamp.UTC().Format(time.RFC3339)
	}
	return embed
}
