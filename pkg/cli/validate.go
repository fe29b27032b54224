package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/msnipe/pkg/cli/config"
	domainConfig "github.com/secmon-lab/msnipe/pkg/domain/model/config"
	"github.com/secmon-lab/msnipe/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var botCfg config.Bot

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the bot configuration file",
		Flags:   botCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			cfg, err := botCfg.Configure()
			if err != nil {
				color.New(color.FgRed, color.Bold).Fprintf(c.Root().ErrWriter, "✗ invalid configuration: %s\n", err.Error())
				return goerr.Wrap(err, "configuration validation failed")
			}

			if botCfg.Path() == "" {
				logger.Info("No configuration file specified, validated built-in defaults")
			} else {
				logger.Info("Configuration validation passed", "path", botCfg.Path())
			}

			printSummary(c.Root().Writer, botCfg.Path(), cfg)
			return nil
		},
	}
}

func printSummary(w io.Writer, path string, cfg *domainConfig.BotConfig) {
	if path == "" {
		path = "(defaults)"
	}

	ok := color.New(color.FgGreen, color.Bold)
	key := color.New(color.FgCyan)

	ok.Fprintf(w, "✓ configuration is valid: %s\n", path)
	rows := []struct {
		name  string
		value string
	}{
		{"cache.capacity", fmt.Sprintf("%d", cfg.Capacity)},
		{"cache.fallback_size", fmt.Sprintf("%d", cfg.FallbackSize)},
		{"commands.ping", fmt.Sprintf("%q", cfg.PingCommand)},
		{"commands.snipe", fmt.Sprintf("%q", cfg.SnipeCommand)},
		{"reply.pong", fmt.Sprintf("%q", cfg.PongReply)},
		{"reply.nothing", fmt.Sprintf("%q", cfg.NothingReply)},
		{"reply.title", fmt.Sprintf("%q", cfg.SnipeTitle)},
		{"reply.color", fmt.Sprintf("#%06x", cfg.AccentColor)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %s = %s\n", key.Sprint(row.name), row.value)
	}
}
