package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// NewOverviewCommand creates the overview command.
func NewOverviewCommand() *cli.Command {
	return &cli.Command{
		Name:    "overview",
		Aliases: []string{"help-all"},
		Usage:   "Show all available features and commands",
		Action: func(c *cli.Context) error {
			fmt.Print(`
╔═══════════════════════════════════════════════════════════╗
║                      🖋  Quill CLI                        ║
║                   Feature Overview                        ║
╚═══════════════════════════════════════════════════════════╝

📝 NOTES
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  quill note list                List notes (filterable)
  quill note list -s Pinned      Only pinned notes
  quill note list -t 3 -q bread  Tag 3, matching "bread"
  quill note create              Create a note (interactive)
  quill note show <id>           Show one note in full
  quill note edit <id>           Edit title/content/tags
  quill note pin <id>            Pin / unpin
  quill note archive <id>        Archive / unarchive
  quill note status <id> <s>     Set status directly
  quill note delete <id>         Delete (asks first)
  quill note copy <id>           Copy content to clipboard

📋 VIEWS
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  quill board                    Interactive status board
  quill tag list                 Browse the tag catalog
  quill stats                    Note and tag statistics

⚙️  ACCOUNT & SETUP
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  quill setup register           Create an account
  quill setup login              Login with credentials
  quill setup logout             Remove the saved session
  quill setup status             Check auth status
  quill account show             Show your profile
  quill account update           Change name/email/password
  quill account delete           Delete the account

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
💡 TIP: Use 'quill <command> --help' for detailed usage.
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
`)
			return nil
		},
	}
}
