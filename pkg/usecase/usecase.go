package usecase

import (
	"github.com/secmon-lab/msnipe/pkg/domain/interfaces"
	"github.com/secmon-lab/msnipe/pkg/domain/model/config"
	slacksvc "github.com/secmon-lab/msnipe/pkg/service/slack"
)

type UseCases struct {
	repo         interfaces.Repository
	messenger    interfaces.Messenger
	botConfig    *config.BotConfig
	slackService slacksvc.Service

	Snipe *SnipeUseCase
	Slack *SlackUseCases
}

type Option func(*UseCases)

func WithMessenger(messenger interfaces.Messenger) Option {
	return func(uc *UseCases) {
		uc.messenger = messenger
	}
}

func WithBotConfig(cfg *config.BotConfig) Option {
	return func(uc *UseCases) {
		uc.botConfig = cfg
	}
}

// WithSlackService enables Slack event handling. The service is also used as
// the messenger unless WithMessenger is given.
func WithSlackService(svc slacksvc.Service) Option {
	return func(uc *UseCases) {
		uc.slackService = svc
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.botConfig == nil {
		uc.botConfig = config.DefaultBotConfig()
	}
	if uc.messenger == nil && uc.slackService != nil {
		uc.messenger = uc.slackService
	}
	if uc.messenger == nil {
		uc.messenger = &discardMessenger{}
	}

	uc.Snipe = NewSnipeUseCase(repo, uc.messenger, uc.botConfig)
	if uc.slackService != nil {
		uc.Slack = NewSlackUseCases(uc.Snipe, uc.slackService)
	}

	return uc
}
