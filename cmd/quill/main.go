package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/quillbox/quill-cli/internal/cli/commands"
)

// Version will be set during build with ldflags
var Version = "1.0.0"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app := &cli.App{
		Name:    "quill",
		Usage:   "Terminal client for the Quillbox notes service",
		Version: Version,
		Commands: []*cli.Command{
			// Setup & session
			commands.NewSetupCommand(logger),

			// Notes
			commands.NewNoteCommand(logger),

			// Views
			commands.NewBoardCommand(logger),
			commands.NewTagCommand(logger),
			commands.NewStatsCommand(logger),

			// Account
			commands.NewAccountCommand(logger),

			// Meta
			commands.NewOverviewCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
