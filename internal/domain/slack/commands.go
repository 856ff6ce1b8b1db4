package slack

import (
	"fmt"
	"strings"

	"github.com/diegoclair/status-update-bot/internal/domain"
)

type CommandType string

const (
	CmdPing CommandType = "ping"
	CmdLast CommandType = "last"
	CmdNext CommandType = "next"
	CmdHelp CommandType = "help"
)

type Command struct {
	Type CommandType
	Args []string
}

func ParseCommand(text string) (*Command, error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return &Command{Type: CmdHelp}, nil
	}

	cmd := &Command{}
	if len(parts) > 1 {
		cmd.Args = parts[1:]
	}

	switch strings.ToLower(parts[0]) {
	case "ping":
		cmd.Type = CmdPing
	case "last", "status":
		cmd.Type = CmdLast
	case "next":
		cmd.Type = CmdNext
	case "help":
		cmd.Type = CmdHelp
	default:
		return nil, fmt.Errorf("unknown command: %s", parts[0])
	}

	return cmd, nil
}

func GetHelpText() string {
	cmd := domain.SlashCommand
	return "*Available Commands:*\n\n" +
		"• `" + cmd + " ping` - Check that the bot is up and running\n" +
		"• `" + cmd + " last` - Show the outcome of the last status update run\n" +
		"• `" + cmd + " next` - Show when the next status update report is due\n" +
		"• `" + cmd + " help` - Show this message"
}
