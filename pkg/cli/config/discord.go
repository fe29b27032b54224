package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

type Discord struct {
	token string
}

func (x *Discord) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "discord-token",
			Usage:       "Discord bot token",
			Category:    "Discord",
			Destination: &x.token,
			// DISCORD is the variable name used by existing deployments
			Sources: cli.EnvVars("MSNIPE_DISCORD_TOKEN", "DISCORD"),
		},
	}
}

func (x Discord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
	)
}

// Token returns the Discord bot token
func (x *Discord) Token() string {
	return x.token
}

// IsConfigured checks if the Discord token is set
func (x *Discord) IsConfigured() bool {
	return x.token != ""
}
