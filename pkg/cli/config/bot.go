package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/msnipe/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// BotFile represents the TOML bot configuration file
type BotFile struct {
	Cache    CacheSection    `toml:"cache"`
	Commands CommandsSection `toml:"commands"`
	Reply    ReplySection    `toml:"reply"`
}

// CacheSection configures the message caches
type CacheSection struct {
	Capacity     int `toml:"capacity"`
	FallbackSize int `toml:"fallback_size"`
}

// CommandsSection configures the command strings
type CommandsSection struct {
	Ping  string `toml:"ping"`
	Snipe string `toml:"snipe"`
}

// ReplySection configures the bot replies
type ReplySection struct {
	Pong    string `toml:"pong"`
	Nothing string `toml:"nothing"`
	Title   string `toml:"title"`
	Color   string `toml:"color"`
}

// DefaultBotFile returns a BotFile holding the built-in defaults
func DefaultBotFile() *BotFile {
	d := domainConfig.DefaultBotConfig()
	return &BotFile{
		Cache: CacheSection{
			Capacity:     d.Capacity,
			FallbackSize: d.FallbackSize,
		},
		Commands: CommandsSection{
			Ping:  d.PingCommand,
			Snipe: d.SnipeCommand,
		},
		Reply: ReplySection{
			Pong:    d.PongReply,
			Nothing: d.NothingReply,
			Title:   d.SnipeTitle,
			Color:   formatColor(d.AccentColor),
		},
	}
}

// Validate checks if the BotFile is valid
func (f *BotFile) Validate() error {
	if f.Cache.Capacity < 1 {
		return goerr.Wrap(ErrInvalidCapacity, "invalid cache section", goerr.V("capacity", f.Cache.Capacity))
	}
	if f.Cache.FallbackSize < 0 {
		return goerr.Wrap(ErrInvalidFallbackSize, "invalid cache section", goerr.V("fallback_size", f.Cache.FallbackSize))
	}

	if f.Commands.Ping == "" {
		return goerr.Wrap(ErrMissingCommand, "invalid commands section", goerr.V(CommandKey, "ping"))
	}
	if f.Commands.Snipe == "" {
		return goerr.Wrap(ErrMissingCommand, "invalid commands section", goerr.V(CommandKey, "snipe"))
	}
	if f.Commands.Ping == f.Commands.Snipe {
		return goerr.Wrap(ErrDuplicateCommand, "invalid commands section", goerr.V(CommandKey, f.Commands.Ping))
	}

	if _, err := parseColor(f.Reply.Color); err != nil {
		return goerr.Wrap(err, "invalid reply section")
	}
	if strings.Count(f.Reply.Title, "%s") != 1 || strings.Count(f.Reply.Title, "%") != 1 {
		return goerr.Wrap(ErrInvalidTitle, "invalid reply section", goerr.V(TitleKey, f.Reply.Title))
	}

	return nil
}

// ToDomain converts the file into the domain BotConfig. Validate must pass first.
func (f *BotFile) ToDomain() *domainConfig.BotConfig {
	color, _ := parseColor(f.Reply.Color)
	return &domainConfig.BotConfig{
		Capacity:     f.Cache.Capacity,
		FallbackSize: f.Cache.FallbackSize,
		PingCommand:  f.Commands.Ping,
		SnipeCommand: f.Commands.Snipe,
		PongReply:    f.Reply.Pong,
		NothingReply: f.Reply.Nothing,
		SnipeTitle:   f.Reply.Title,
		AccentColor:  color,
	}
}

// LoadBotFile loads the bot configuration from a TOML file. Keys missing
// from the file keep their default values.
func LoadBotFile(path string) (*BotFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, err.Error(), goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	file := DefaultBotFile()
	if err := toml.Unmarshal(data, file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config: "+err.Error(), goerr.V(ConfigPathKey, path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return file, nil
}

func parseColor(s string) (int, error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, goerr.Wrap(ErrInvalidColor, "malformed color", goerr.V(ColorKey, s))
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, goerr.Wrap(ErrInvalidColor, "malformed color", goerr.V(ColorKey, s))
	}
	return int(v), nil
}

func formatColor(c int) string {
	return fmt.Sprintf("#%06x", c)
}

// Bot holds the --config flag and resolves the bot configuration
type Bot struct {
	path string
}

func (x *Bot) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Bot configuration file (TOML)",
			Category:    "Bot",
			Destination: &x.path,
			Sources:     cli.EnvVars("MSNIPE_CONFIG"),
		},
	}
}

func (x Bot) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Path returns the configuration file path, empty when not set
func (x *Bot) Path() string {
	return x.path
}

// Configure loads the configuration file, or returns the defaults when no
// file is specified.
func (x *Bot) Configure() (*domainConfig.BotConfig, error) {
	if x.path == "" {
		return domainConfig.DefaultBotConfig(), nil
	}

	file, err := LoadBotFile(x.path)
	if err != nil {
		return nil, err
	}
	return file.ToDomain(), nil
}
