package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// NewAccountCommand creates the account command group (profile management).
func NewAccountCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Show or change the current account",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the current account's profile",
				Action: func(c *cli.Context) error {
					mgr, _, client, err := requireSession(logger)
					if err != nil {
						return err
					}

					user, err := client.GetUser(mgr.User().ID)
					if err != nil {
						return fmt.Errorf("failed to fetch profile: %w", err)
					}

					fmt.Printf("👤 %s\n", user.Name)
					fmt.Printf("   Email:  %s\n", user.Email)
					fmt.Printf("   Joined: %s\n", user.CreatedAt.Format("2006-01-02"))
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Update name, email or password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "New display name"},
					&cli.StringFlag{Name: "email", Usage: "New email address"},
					&cli.StringFlag{Name: "password", Usage: "New password"},
				},
				Action: func(c *cli.Context) error {
					fields := map[string]interface{}{}
					for _, f := range []string{"name", "email", "password"} {
						if c.IsSet(f) {
							fields[f] = c.String(f)
						}
					}
					if len(fields) == 0 {
						return fmt.Errorf("nothing to update; pass --name, --email or --password")
					}

					mgr, _, client, err := requireSession(logger)
					if err != nil {
						return err
					}

					user, err := client.UpdateUser(mgr.User().ID, fields)
					if err != nil {
						return fmt.Errorf("failed to update profile: %s", err.Error())
					}

					fmt.Printf("✅ Profile updated: %s <%s>\n", user.Name, user.Email)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete the account and every note in it",
				Action: func(c *cli.Context) error {
					mgr, _, client, err := requireSession(logger)
					if err != nil {
						return err
					}

					if !askForConfirmation("Delete your account and ALL of its notes?") {
						fmt.Println("🚫 Deletion cancelled.")
						return nil
					}
					if !askForConfirmation("This is permanent. Really delete everything?") {
						fmt.Println("🚫 Deletion cancelled.")
						return nil
					}

					if err := client.DeleteUser(mgr.User().ID); err != nil {
						return fmt.Errorf("failed to delete account: %s", err.Error())
					}

					mgr.Logout()
					fmt.Println("✅ Account deleted. You have been logged out.")
					return nil
				},
			},
		},
	}
}
