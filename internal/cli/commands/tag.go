package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/quillbox/quill-cli/internal/models"
)

// NewTagCommand creates the tag command group. Tags are a read-only catalog
// for this client; they are managed elsewhere.
func NewTagCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "tag",
		Usage: "Browse the tag catalog",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List all available tags",
				Action: func(c *cli.Context) error {
					_, eng, _, err := requireSession(logger)
					if err != nil {
						return err
					}

					tags := eng.Tags()
					if len(tags) == 0 {
						fmt.Println("🏷️  No tags available.")
						return nil
					}

					fmt.Printf("🏷️  Tags (%d)\n\n", len(tags))
					for _, t := range tags {
						fmt.Printf("%-4d %s  %s\n", t.ID, renderTagChips([]models.Tag{t}), t.Color)
					}
					return nil
				},
			},
		},
	}
}
