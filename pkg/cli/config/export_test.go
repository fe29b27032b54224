package config

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, signingSecret string) *Slack {
	return &Slack{
		botToken:      botToken,
		signingSecret: signingSecret,
	}
}

// NewDiscordForTest creates a Discord config for testing purposes
func NewDiscordForTest(token string) *Discord {
	return &Discord{token: token}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewBotForTest creates a Bot config for testing purposes
func NewBotForTest(path string) *Bot {
	return &Bot{path: path}
}

var (
	ParseColor  = parseColor
	FormatColor = formatColor
)
