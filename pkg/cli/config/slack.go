package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	botToken      string
	signingSecret string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for replies and user names)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("MSNIPE_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for webhook verification)",
			Category:    "Slack",
			Destination: &x.signingSecret,
			Sources:     cli.EnvVars("MSNIPE_SLACK_SIGNING_SECRET"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
	)
}

// BotToken returns the Slack bot token
func (x *Slack) BotToken() string {
	return x.botToken
}

// SigningSecret returns the Slack signing secret
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}

// IsConfigured checks if any Slack setting is present
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" || x.signingSecret != ""
}

// Validate checks that the Slack settings are complete once any of them is
// set. The webhook needs an HTTP listener, so addr must not be empty.
func (x *Slack) Validate(addr string) error {
	if !x.IsConfigured() {
		return nil
	}
	if x.botToken == "" || x.signingSecret == "" {
		return goerr.Wrap(ErrInvalidConfig, "both --slack-bot-token and --slack-signing-secret are required for Slack")
	}
	if addr == "" {
		return goerr.Wrap(ErrInvalidConfig, "--addr is required to receive Slack events")
	}
	return nil
}
