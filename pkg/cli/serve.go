package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/msnipe/pkg/cli/config"
	discordctrl "github.com/secmon-lab/msnipe/pkg/controller/discord"
	httpctrl "github.com/secmon-lab/msnipe/pkg/controller/http"
	domainConfig "github.com/secmon-lab/msnipe/pkg/domain/model/config"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
	"github.com/secmon-lab/msnipe/pkg/repository/memory"
	"github.com/secmon-lab/msnipe/pkg/service/discord"
	"github.com/secmon-lab/msnipe/pkg/service/slack"
	"github.com/secmon-lab/msnipe/pkg/usecase"
	"github.com/secmon-lab/msnipe/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var botCfg config.Bot
	var discordCfg config.Discord
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address for health check and Slack events (disabled when empty)",
			Sources:     cli.EnvVars("MSNIPE_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, botCfg.Flags()...)
	flags = append(flags, discordCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Connect to the chat platforms and serve commands",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := botCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load bot configuration")
			}
			if err := slackCfg.Validate(addr); err != nil {
				return err
			}
			if !discordCfg.IsConfigured() && !slackCfg.IsConfigured() {
				return goerr.Wrap(config.ErrNoGateway, "set --discord-token (or DISCORD) and/or --slack-bot-token with --slack-signing-secret")
			}

			logging.Default().Info("Bot configuration loaded",
				"config", botCfg,
				"discord", discordCfg,
				"slack", slackCfg,
				"capacity", cfg.Capacity,
				"fallback_size", cfg.FallbackSize,
			)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, ctx := errgroup.WithContext(ctx)
			var platforms []string
			var httpOpts []httpctrl.Options

			if discordCfg.IsConfigured() {
				client, err := discord.New(discordCfg.Token(), discord.WithFallbackSize(cfg.FallbackSize))
				if err != nil {
					return goerr.Wrap(err, "failed to initialize discord client")
				}

				uc := newUseCases(cfg, usecase.WithMessenger(client))
				discordctrl.New(uc).Register(client.Session())

				eg.Go(func() error { return runDiscord(ctx, client) })
				platforms = append(platforms, types.PlatformDiscord.String())
			}

			if slackCfg.IsConfigured() {
				svc, err := slack.New(slackCfg.BotToken())
				if err != nil {
					return goerr.Wrap(err, "failed to initialize slack service")
				}

				uc := newUseCases(cfg, usecase.WithSlackService(svc))
				if err := uc.Slack.Connect(ctx); err != nil {
					return err
				}

				slackWebhookHandler := httpctrl.NewSlackWebhookHandler(uc.Slack)
				httpOpts = append(httpOpts, httpctrl.WithSlackWebhook(slackWebhookHandler, slackCfg.SigningSecret()))
				platforms = append(platforms, types.PlatformSlack.String())
				logging.Default().Info("Slack webhook handler enabled")
			}

			if addr != "" {
				httpOpts = append(httpOpts, httpctrl.WithPlatforms(platforms...))
				server := &http.Server{
					Addr:              addr,
					Handler:           httpctrl.New(httpOpts...),
					ReadHeaderTimeout: 30 * time.Second,
				}
				eg.Go(func() error { return runHTTPServer(ctx, server) })
			}

			if err := eg.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Shutdown completed")
			return nil
		},
	}
}

// newUseCases creates use cases with their own state. Each platform gets a
// separate repository so that channel IDs never collide.
func newUseCases(cfg *domainConfig.BotConfig, opts ...usecase.Option) *usecase.UseCases {
	repo := memory.New(memory.WithCapacity(cfg.Capacity))
	return usecase.New(repo, append(opts, usecase.WithBotConfig(cfg))...)
}

func runDiscord(ctx context.Context, client *discord.Client) error {
	if err := client.Open(); err != nil {
		return err
	}
	logging.Default().Info("Discord gateway connected")

	<-ctx.Done()

	if err := client.Close(); err != nil {
		return err
	}
	logging.Default().Info("Discord gateway closed")
	return nil
}

func runHTTPServer(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Default().Info("Starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- goerr.Wrap(err, "failed to start server", goerr.V("addr", server.Addr))
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		logging.Default().Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return goerr.Wrap(err, "failed to shutdown server gracefully")
		}
		return nil
	}
}
