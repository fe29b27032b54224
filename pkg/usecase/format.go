package usecase

import (
	"fmt"

	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/model/config"
)

func formatSnipe(cfg *config.BotConfig, record *model.SnipeRecord) *model.FormattedMessage {
	return &model.FormattedMessage{
		Title:       fmt.Sprintf(cfg.SnipeTitle, record.Author),
		Body:        record.Content,
		Timestamp:   record.Timestamp,
		AccentColor: cfg.AccentColor,
	}
}
