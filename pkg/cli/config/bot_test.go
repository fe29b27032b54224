package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/msnipe/pkg/cli/config"
	domainConfig "github.com/secmon-lab/msnipe/pkg/domain/model/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadBotFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "full configuration",
			content: `
[cache]
capacity = 50
fallback_size = 200

[commands]
ping = "?ping"
snipe = "?snipe"

[reply]
pong = "pong"
nothing = "nothing"
title = "Deleted by %s"
color = "#FF8800"
`,
		},
		{
			name:    "empty file uses defaults",
			content: ``,
		},
		{
			name: "zero fallback size is allowed",
			content: `
[cache]
fallback_size = 0
`,
		},
		{
			name: "zero capacity",
			content: `
[cache]
capacity = 0
`,
			wantErr: config.ErrInvalidCapacity,
		},
		{
			name: "negative fallback size",
			content: `
[cache]
fallback_size = -1
`,
			wantErr: config.ErrInvalidFallbackSize,
		},
		{
			name: "empty ping command",
			content: `
[commands]
ping = ""
`,
			wantErr: config.ErrMissingCommand,
		},
		{
			name: "same ping and snipe command",
			content: `
[commands]
ping = "!x"
snipe = "!x"
`,
			wantErr: config.ErrDuplicateCommand,
		},
		{
			name: "color without hash",
			content: `
[reply]
color = "00ff00"
`,
			wantErr: config.ErrInvalidColor,
		},
		{
			name: "color with invalid hex",
			content: `
[reply]
color = "#00gg00"
`,
			wantErr: config.ErrInvalidColor,
		},
		{
			name: "title without placeholder",
			content: `
[reply]
title = "Deleted message"
`,
			wantErr: config.ErrInvalidTitle,
		},
		{
			name: "title with two placeholders",
			content: `
[reply]
title = "%s deleted %s"
`,
			wantErr: config.ErrInvalidTitle,
		},
		{
			name:    "malformed TOML",
			content: `[cache`,
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			file, err := config.LoadBotFile(path)
			if tt.wantErr != nil {
				gt.Value(t, err).NotNil()
				gt.Error(t, err).Is(tt.wantErr)
				return
			}

			gt.NoError(t, err).Required()
			gt.Value(t, file).NotNil()
		})
	}
}

func TestLoadBotFile_NotFound(t *testing.T) {
	_, err := config.LoadBotFile(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}

func TestBotFile_ToDomain(t *testing.T) {
	path := writeConfig(t, `
[cache]
capacity = 5

[commands]
snipe = "!snipe"

[reply]
color = "#0000ff"
`)

	file, err := config.LoadBotFile(path)
	gt.NoError(t, err).Required()

	cfg := file.ToDomain()
	gt.Value(t, cfg.Capacity).Equal(5)
	gt.Value(t, cfg.FallbackSize).Equal(domainConfig.DefaultFallbackSize)
	gt.Value(t, cfg.PingCommand).Equal(domainConfig.DefaultPingCommand)
	gt.Value(t, cfg.SnipeCommand).Equal("!snipe")
	gt.Value(t, cfg.PongReply).Equal(domainConfig.DefaultPongReply)
	gt.Value(t, cfg.NothingReply).Equal(domainConfig.DefaultNothingReply)
	gt.Value(t, cfg.SnipeTitle).Equal(domainConfig.DefaultSnipeTitle)
	gt.Value(t, cfg.AccentColor).Equal(0x0000ff)
}

func TestDefaultBotFile(t *testing.T) {
	file := config.DefaultBotFile()
	gt.NoError(t, file.Validate())
	gt.Value(t, file.Reply.Color).Equal("#00ff00")
	gt.Value(t, *file.ToDomain()).Equal(*domainConfig.DefaultBotConfig())
}

func TestBot_Configure(t *testing.T) {
	t.Run("no path returns defaults", func(t *testing.T) {
		cfg, err := config.NewBotForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, *cfg).Equal(*domainConfig.DefaultBotConfig())
	})

	t.Run("loads file", func(t *testing.T) {
		path := writeConfig(t, `
[commands]
ping = "ping?"
`)
		cfg, err := config.NewBotForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.PingCommand).Equal("ping?")
	})

	t.Run("invalid file", func(t *testing.T) {
		path := writeConfig(t, `
[cache]
capacity = -3
`)
		_, err := config.NewBotForTest(path).Configure()
		gt.Error(t, err).Is(config.ErrInvalidCapacity)
	})
}

func TestColor(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "#00ff00", want: 0x00ff00},
		{in: "#FFFFFF", want: 0xffffff},
		{in: "#000000", want: 0},
		{in: "#fff", wantErr: true},
		{in: "", wantErr: true},
		{in: "#-12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseColor(tt.in)
			if tt.wantErr {
				gt.Error(t, err).Is(config.ErrInvalidColor)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tt.want)
		})
	}

	gt.Value(t, config.FormatColor(0x0000ff)).Equal("#0000ff")
}
