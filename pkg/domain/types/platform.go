package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Platform is the chat platform an event came from
type Platform string

const (
	PlatformDiscord Platform = "discord"
	PlatformSlack   Platform = "slack"
)

// Validate checks if the Platform is one of the supported platforms
func (p Platform) Validate() error {
	switch p {
	case PlatformDiscord, PlatformSlack:
		return nil
	default:
		return goerr.New("unsupported platform", goerr.V("platform", p))
	}
}

// String returns the string representation of Platform
func (p Platform) String() string {
	return string(p)
}
