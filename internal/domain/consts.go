package domain

// SlashCommand is the command registered in the Slack app manifest.
const SlashCommand = "/statusbot"

// Layouts used in user-facing messages.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "Mon, 02 Jan 2006 15:04 MST"
)

// RunStatusEmoji decorates run statuses in slash command answers.
var RunStatusEmoji = map[string]string{
	"running":   "⏳",
	"succeeded": "✅",
	"failed":    "❌",
}
