package config

const (
	DefaultCapacity     = 20
	DefaultFallbackSize = 100
	DefaultPingCommand  = "!ping"
	// The snipe command has no "!" prefix, unlike ping. Kept as users know it.
	DefaultSnipeCommand = "msnipe"
	DefaultPongReply    = "Pong!"
	DefaultNothingReply = "Nothing to snipe!"
	DefaultSnipeTitle   = "Last deleted message by %s"
	DefaultAccentColor  = 0x00ff00
)

// BotConfig holds the runtime behaviour of the bot
type BotConfig struct {
	Capacity     int // Recent messages kept per channel
	FallbackSize int // Messages kept by the platform-side cache (Discord state)
	PingCommand  string
	SnipeCommand string
	PongReply    string
	NothingReply string
	SnipeTitle   string // fmt format with a single %s for the author
	AccentColor  int
}

// DefaultBotConfig returns the configuration used when no config file is given
func DefaultBotConfig() *BotConfig {
	return &BotConfig{
		Capacity:     DefaultCapacity,
		FallbackSize: DefaultFallbackSize,
		PingCommand:  DefaultPingCommand,
		SnipeCommand: DefaultSnipeCommand,
		PongReply:    DefaultPongReply,
		NothingReply: DefaultNothingReply,
		SnipeTitle:   DefaultSnipeTitle,
		AccentColor:  DefaultAccentColor,
	}
}
