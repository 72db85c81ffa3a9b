package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"go.uber.org/zap"

	"github.com/quillbox/quill-cli/internal/api"
	"github.com/quillbox/quill-cli/internal/auth"
	"github.com/quillbox/quill-cli/internal/config"
	"github.com/quillbox/quill-cli/internal/models"
	"github.com/quillbox/quill-cli/internal/notes"
	"github.com/quillbox/quill-cli/internal/session"
)

// connect builds the API client and session manager from config.
func connect(logger *zap.Logger) (*session.Manager, *api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	client := api.NewClient(cfg.APIBaseURL)
	mgr := session.NewManager(client, auth.NewStore(), logger)
	return mgr, client, nil
}

// requireSession resumes the stored session and loads the cache. Commands
// that touch notes all start here.
func requireSession(logger *zap.Logger) (*session.Manager, *notes.Engine, *api.Client, error) {
	mgr, client, err := connect(logger)
	if err != nil {
		return nil, nil, nil, err
	}

	user, err := mgr.Resume()
	if err != nil {
		fmt.Println("❌ Not logged in.")
		fmt.Println("💡 Run 'quill setup login' first.")
		return nil, nil, nil, err
	}

	eng := notes.NewEngine(client, user.ID, logger)
	eng.Reload()
	return mgr, eng, client, nil
}

// askForConfirmation prompts the user with a yes/no question, default no.
func askForConfirmation(prompt string) bool {
	confirmed := false
	if err := survey.AskOne(&survey.Confirm{Message: prompt}, &confirmed); err != nil {
		return false
	}
	return confirmed
}

// parseStatus converts user input into a Status, case-insensitively.
func parseStatus(s string) (models.Status, error) {
	for _, known := range models.AllStatuses {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (expected Active, Pinned or Archived)", s)
}

// parseNoteID parses a positional note ID argument.
func parseNoteID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note ID %q", arg)
	}
	return id, nil
}

// parseTagIDs parses a comma-separated tag ID list, e.g. "1,4,7".
func parseTagIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tag ID %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
