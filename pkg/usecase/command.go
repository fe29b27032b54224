package usecase

type command int

const (
	commandNone command = iota
	commandPing
	commandSnipe
)

// parseCommand matches the whole message content against the configured
// command strings. Partial matches are not commands.
func (uc *SnipeUseCase) parseCommand(content string) command {
	switch content {
	case "":
		return commandNone
	case uc.cfg.PingCommand:
		return commandPing
	case uc.cfg.SnipeCommand:
		return commandSnipe
	default:
		return commandNone
	}
}
