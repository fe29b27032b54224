package discord

import "github.com/bwmarrin/discordgo"

// API is exported for testing so that fakes can replace the session
type API = api

// NewWithAPIForTest creates a Client that sends through the given api
func NewWithAPIForTest(a API) *Client {
	return &Client{api: a}
}

// FallbackSize returns the state cache size configured on the session
func (c *Client) FallbackSize() int {
	return c.session.State.MaxMessageCount
}

// IdentifyIntents returns the intents configured on the session
func (c *Client) IdentifyIntents() discordgo.Intent {
	return c.session.Identify.Intents
}

var ToEmbed = toEmbed
