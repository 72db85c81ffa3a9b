package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/quillbox/quill-cli/internal/session"
)

// NewSetupCommand creates the setup command group for authentication.
func NewSetupCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configure the CLI with user authentication",
		Subcommands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Register a new user account",
				Action: func(c *cli.Context) error {
					return handleRegister(logger)
				},
			},
			{
				Name:  "login",
				Usage: "Login with existing user credentials",
				Action: func(c *cli.Context) error {
					return handleLogin(logger)
				},
			},
			{
				Name:  "logout",
				Usage: "Discard the saved session",
				Action: func(c *cli.Context) error {
					return handleLogout(logger)
				},
			},
			{
				Name:  "status",
				Usage: "Show the current session",
				Action: func(c *cli.Context) error {
					return handleStatus(logger)
				},
			},
		},
		Action: func(c *cli.Context) error {
			return cli.ShowCommandHelp(c, "setup")
		},
	}
}

func handleRegister(logger *zap.Logger) error {
	answers := struct {
		Name     string
		Email    string
		Password string
	}{}

	questions := []*survey.Question{
		{Name: "name", Prompt: &survey.Input{Message: "Your name:"}, Validate: survey.Required},
		{Name: "email", Prompt: &survey.Input{Message: "Email:"}, Validate: survey.Required},
		{Name: "password", Prompt: &survey.Password{Message: "Password:"}, Validate: survey.Required},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}

	mgr, _, err := connect(logger)
	if err != nil {
		return err
	}

	user, err := mgr.Register(answers.Name, answers.Email, answers.Password)
	if err != nil {
		return describeAuthFailure("Registration", err)
	}

	fmt.Printf("✅ Registered and logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func handleLogin(logger *zap.Logger) error {
	answers := struct {
		Email    string
		Password string
	}{}

	questions := []*survey.Question{
		{Name: "email", Prompt: &survey.Input{Message: "Email:"}, Validate: survey.Required},
		{Name: "password", Prompt: &survey.Password{Message: "Password:"}, Validate: survey.Required},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}

	mgr, _, err := connect(logger)
	if err != nil {
		return err
	}

	user, err := mgr.Login(answers.Email, answers.Password)
	if err != nil {
		return describeAuthFailure("Login", err)
	}

	fmt.Printf("✅ Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func handleLogout(logger *zap.Logger) error {
	mgr, _, err := connect(logger)
	if err != nil {
		return err
	}

	mgr.Logout()
	fmt.Println("✅ Logged out. Saved session removed.")
	return nil
}

func handleStatus(logger *zap.Logger) error {
	mgr, _, err := connect(logger)
	if err != nil {
		return err
	}

	user, err := mgr.Resume()
	if err != nil {
		fmt.Println("❌ No active session.")
		fmt.Println("💡 Run 'quill setup login' to authenticate.")
		return nil
	}

	fmt.Printf("✅ Logged in as %s <%s>\n", user.Name, user.Email)
	fmt.Printf("   Token storage: %s\n", mgr.StorageMode())
	return nil
}

// describeAuthFailure keeps login and registration failures on one generic
// retry message, but hints at connectivity when that's what actually broke.
func describeAuthFailure(action string, err error) error {
	if authErr, ok := err.(*session.AuthError); ok && authErr.Kind == session.KindNetwork {
		return fmt.Errorf("%s failed: could not reach the server. Please try again", action)
	}
	return fmt.Errorf("%s failed. Please check your credentials and try again", action)
}
