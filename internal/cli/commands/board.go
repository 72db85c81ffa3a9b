package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/quillbox/quill-cli/internal/ui/board"
)

// NewBoardCommand creates the interactive dashboard command.
func NewBoardCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:    "board",
		Aliases: []string{"dashboard"},
		Usage:   "Browse notes on an interactive status board",
		Action: func(c *cli.Context) error {
			_, eng, _, err := requireSession(logger)
			if err != nil {
				return err
			}

			program := tea.NewProgram(board.New(eng), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("board exited with an error: %w", err)
			}
			return nil
		},
	}
}
