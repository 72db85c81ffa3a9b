package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show note and tag statistics",
		Action: func(c *cli.Context) error {
			mgr, eng, _, err := requireSession(logger)
			if err != nil {
				return err
			}

			stats := eng.Stats()
			if stats == nil {
				fmt.Println("❌ Statistics are unavailable right now.")
				return nil
			}

			fmt.Printf("📊 Statistics for %s\n\n", mgr.User().Name)
			fmt.Printf("   Total notes:    %d\n", stats.TotalNotes)
			fmt.Printf("   Active:         %d\n", stats.ActiveNotes)
			fmt.Printf("   Pinned:         %d\n", stats.PinnedNotes)
			fmt.Printf("   Archived:       %d\n", stats.ArchivedNotes)
			fmt.Printf("   Tags in use:    %d\n", stats.TotalActiveTags)
			if stats.LastLoginDate != nil {
				fmt.Printf("   Last login:     %s\n", stats.LastLoginDate.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
