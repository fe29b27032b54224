package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound      = goerr.New("configuration file not found")
	ErrInvalidConfig       = goerr.New("invalid configuration")
	ErrInvalidCapacity     = goerr.New("cache capacity must be at least 1")
	ErrInvalidFallbackSize = goerr.New("fallback cache size must not be negative")
	ErrMissingCommand      = goerr.New("command is required")
	ErrDuplicateCommand    = goerr.New("ping and snipe commands must differ")
	ErrInvalidColor        = goerr.New("invalid color format, expected #RRGGBB")
	ErrInvalidTitle        = goerr.New("title must contain exactly one %s")
	ErrInvalidLogLevel     = goerr.New("invalid log level")
	ErrInvalidLogFormat    = goerr.New("invalid log format")
	ErrNoGateway           = goerr.New("no chat platform is configured")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	CommandKey    = "command"
	ColorKey      = "color"
	TitleKey      = "title"
)
