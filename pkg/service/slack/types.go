package slack

import (
	"context"

	"github.com/secmon-lab/msnipe/pkg/domain/interfaces"
)

// Service provides interface to Slack Web API for the bot
type Service interface {
	// SendPlainMessage and SendFormattedMessage post replies to a channel
	interfaces.Messenger

	// GetUserName resolves a user ID to a display name (with caching).
	// The user ID itself is returned when the lookup fails.
	GetUserName(ctx context.Context, userID string) string

	// AuthTest returns the identity of the bot user behind the token
	AuthTest(ctx context.Context) (*Identity, error)
}

// Identity represents the bot user
type Identity struct {
	UserID string
	Name   string
	TeamID string
	BotID  string
}

// User represents a Slack user
type User struct {
	ID          string
	Name        string
	RealName    string
	DisplayName string
}

// Label returns the most human readable name of the user
func (u *User) Label() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.RealName != "":
		return u.RealName
	case u.Name != "":
		return u.Name
	default:
		return u.ID
	}
}
