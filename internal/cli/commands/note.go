package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/quillbox/quill-cli/internal/api"
	"github.com/quillbox/quill-cli/internal/models"
	"github.com/quillbox/quill-cli/internal/notes"
)

var statusBadges = map[models.Status]lipgloss.Style{
	models.StatusActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	models.StatusPinned:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	models.StatusArchived: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// NewNoteCommand creates the note command group.
func NewNoteCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "note",
		Usage: "Create, list and manage notes",
		Subcommands: []*cli.Command{
			noteListCmd(logger),
			noteShowCmd(logger),
			noteCreateCmd(logger),
			noteEditCmd(logger),
			notePinCmd(logger),
			noteArchiveCmd(logger),
			noteStatusCmd(logger),
			noteDeleteCmd(logger),
			noteCopyCmd(logger),
		},
	}
}

func noteListCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List notes, optionally filtered",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Filter by status (Active, Pinned, Archived)"},
			&cli.Int64Flag{Name: "tag", Aliases: []string{"t"}, Usage: "Filter by tag ID"},
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Case-insensitive search in title and content"},
			&cli.StringFlag{Name: "sort", Usage: "Server sort field (created_date, last_modified, title)"},
			&cli.StringFlag{Name: "order", Usage: "Server sort order (asc, desc)"},
		},
		Action: func(c *cli.Context) error {
			_, eng, _, err := requireSession(logger)
			if err != nil {
				return err
			}

			if c.IsSet("sort") || c.IsSet("order") {
				eng.SetListOptions(api.ListNotesOptions{
					SortBy: c.String("sort"),
					Order:  c.String("order"),
				})
				eng.Reload()
			}

			criteria := notes.Criteria{Search: c.String("search")}
			if s := c.String("status"); s != "" {
				status, err := parseStatus(s)
				if err != nil {
					return err
				}
				criteria.Status = &status
			}
			if c.IsSet("tag") {
				tagID := c.Int64("tag")
				criteria.TagID = &tagID
			}

			displayNoteList(eng.Filter(criteria), criteria)
			return nil
		},
	}
}

func noteShowCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one note in full",
		ArgsUsage: "[id]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("note ID is required")
			}
			id, err := parseNoteID(c.Args().First())
			if err != nil {
				return err
			}

			_, _, client, err := requireSession(logger)
			if err != nil {
				return err
			}

			note, err := client.GetNote(id)
			if err != nil {
				return fmt.Errorf("failed to fetch note: %w", err)
			}

			badge := statusBadges[note.Status].Render(string(note.Status))
			fmt.Printf("%s  %s\n", lipgloss.NewStyle().Bold(true).Render(note.Title), badge)
			if len(note.Tags) > 0 {
				fmt.Println(renderTagChips(note.Tags))
			}
			fmt.Printf("Modified: %s\n\n", note.LastModified.Format("2006-01-02 15:04"))

			if strings.TrimSpace(note.Content) != "" {
				rendered, err := glamour.Render(note.Content, "dark")
				if err != nil {
					fmt.Println(note.Content)
				} else {
					fmt.Print(rendered)
				}
			}
			return nil
		},
	}
}

func noteCreateCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:    "create",
		Aliases: []string{"add", "new"},
		Usage:   "Create a new note (interactive when no title flag given)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Note title"},
			&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "Note content"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tag IDs, e.g. 1,4"},
		},
		Action: func(c *cli.Context) error {
			_, eng, _, err := requireSession(logger)
			if err != nil {
				return err
			}

			title := c.String("title")
			content := c.String("content")
			tagIDs, err := parseTagIDs(c.String("tags"))
			if err != nil {
				return err
			}

			if title == "" {
				title, content, tagIDs, err = promptNoteForm(eng, "", "", nil)
				if err != nil {
					return err
				}
			}

			note, err := eng.Create(title, content, tagIDs)
			if err != nil {
				return describeMutationFailure("create note", err)
			}

			fmt.Printf("✅ Created note #%d: %s\n", note.ID, note.Title)
			return nil
		},
	}
}

func noteEditCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Update a note's title, content or tags",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "New content"},
			&cli.StringFlag{Name: "tags", Usage: "Replacement comma-separated tag IDs"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("note ID is required")
			}
			id, err := parseNoteID(c.Args().First())
			if err != nil {
				return err
			}

			_, eng, _, err := requireSession(logger)
			if err != nil {
				return err
			}

			current, ok := eng.Note(id)
			if !ok {
				return fmt.Errorf("note %d not found", id)
			}

			// Flags not given keep the current values.
			title := current.Title
			if c.IsSet("title") {
				title = c.String("title")
			}
			content := current.Content
			if c.IsSet("content") {
				content = c.String("content")
			}
			tagIDs := tagIDsOf(current)
			if c.IsSet("tags") {
				tagIDs, err = parseTagIDs(c.String("tags"))
				if err != nil {
					return err
				}
			}

			if !c.IsSet("title") && !c.IsSet("content") && !c.IsSet("tags") {
				title, content, tagIDs, err = promptNoteForm(eng, current.Title, current.Content, tagIDsOf(current))
				if err != nil {
					return err
				}
			}

			note, err := eng.Update(id, title, content, tagIDs)
			if err != nil {
				return describeMutationFailure("update note", err)
			}

			fmt.Printf("✅ Updated note #%d: %s\n", note.ID, note.Title)
			return nil
		},
	}
}

func notePinCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "pin",
		Usage:     "Pin a note, or unpin it if already pinned",
		ArgsUsage: "[id]",
		Action: func(c *cli.Context) error {
			return toggleAction(c, logger, "pin", (*notes.Engine).TogglePin)
		},
	}
}

func noteArchiveCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "archive",
		Usage:     "Archive a note, or unarchive it if already archived",
		ArgsUsage: "[id]",
		Action: func(c *cli.Context) error {
			return toggleAction(c, logger, "archive", (*notes.Engine).ToggleArchive)
		},
	}
}

func toggleAction(c *cli.Context, logger *zap.Logger, verb string, toggle func(*notes.Engine, int64) (models.Status, error)) error {
	if c.NArg() < 1 {
		return fmt.Errorf("note ID is required")
	}
	id, err := parseNoteID(c.Args().First())
	if err != nil {
		return err
	}

	_, eng, _, err := requireSession(logger)
	if err != nil {
		return err
	}

	next, err := toggle(eng, id)
	if err != nil {
		return describeMutationFailure(verb+" note", err)
	}

	switch next {
	case models.StatusPinned:
		fmt.Printf("📌 Note #%d pinned.\n", id)
	case models.StatusArchived:
		fmt.Printf("📦 Note #%d archived.\n", id)
	default:
		fmt.Printf("✅ Note #%d is now %s.\n", id, strings.ToLower(string(next)))
	}
	return nil
}

func noteStatusCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Set a note's status directly",
		ArgsUsage: "[id] [Active|Pinned|Archived]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("note ID and status are required")
			}
			id, err := parseNoteID(c.Args().Get(0))
			if err != nil {
				return err
			}
			status, err := parseStatus(c.Args().Get(1))
			if err != nil {
				return err
			}

			_, eng, _, err := requireSession(logger)
			if err != nil {
				return err
			}

			if err := eng.SetStatus(id, status); err != nil {
				return describeMutationFailure("update note status", err)
			}

			fmt.Printf("✅ Note #%d status set to %s.\n", id, status)
			return nil
		},
	}
}

func noteDeleteCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a note permanently",
		ArgsUsage: "[id]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("note ID is required")
			}
			id, err := parseNoteID(c.Args().First())
			if err != nil {
				return err
			}

			_, eng, _, err := requireSession(logger)
			if err != nil {
				return err
			}

			title := fmt.Sprintf("#%d", id)
			if note, ok := eng.Note(id); ok {
				title = fmt.Sprintf("%q", note.Title)
			}

			if !askForConfirmation(fmt.Sprintf("Delete note %s? This cannot be undone.", title)) {
				fmt.Println("🚫 Delete cancelled.")
				return nil
			}

			if err := eng.Delete(id); err != nil {
				return describeMutationFailure("delete note", err)
			}

			fmt.Printf("✅ Note %s deleted.\n", title)
			return nil
		},
	}
}

func noteCopyCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "copy",
		Usage:     "Copy a note's content to the clipboard",
		ArgsUsage: "[id]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("note ID is required")
			}
			id, err := parseNoteID(c.Args().First())
			if err != nil {
				return err
			}

			_, eng, _, err := requireSession(logger)
			if err != nil {
				return err
			}

			note, ok := eng.Note(id)
			if !ok {
				return fmt.Errorf("note %d not found", id)
			}

			if err := clipboard.WriteAll(note.Content); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}

			fmt.Printf("📋 Copied content of %q to the clipboard.\n", note.Title)
			return nil
		},
	}
}

// promptNoteForm runs the interactive create/edit form. Tag selection is
// offered only when the catalog is non-empty.
func promptNoteForm(eng *notes.Engine, title, content string, selected []int64) (string, string, []int64, error) {
	if err := survey.AskOne(&survey.Input{Message: "Title:", Default: title}, &title, survey.WithValidator(survey.Required)); err != nil {
		return "", "", nil, err
	}
	if err := survey.AskOne(&survey.Multiline{Message: "Content:", Default: content}, &content); err != nil {
		return "", "", nil, err
	}

	catalog := eng.Tags()
	if len(catalog) == 0 {
		return title, content, nil, nil
	}

	options := make([]string, len(catalog))
	defaults := []string{}
	for i, t := range catalog {
		options[i] = t.Name
		for _, id := range selected {
			if id == t.ID {
				defaults = append(defaults, t.Name)
			}
		}
	}

	var chosen []string
	if err := survey.AskOne(&survey.MultiSelect{Message: "Tags:", Options: options, Default: defaults}, &chosen); err != nil {
		return "", "", nil, err
	}

	tagIDs := make([]int64, 0, len(chosen))
	for _, name := range chosen {
		for _, t := range catalog {
			if t.Name == name {
				tagIDs = append(tagIDs, t.ID)
			}
		}
	}
	return title, content, tagIDs, nil
}

func tagIDsOf(n models.Note) []int64 {
	ids := make([]int64, 0, len(n.Tags))
	for _, t := range n.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// describeMutationFailure surfaces the server's message verbatim; a local
// validation error already reads well on its own.
func describeMutationFailure(action string, err error) error {
	var vErr *notes.ValidationError
	if errors.As(err, &vErr) {
		return fmt.Errorf("cannot %s: %s", action, vErr.Message)
	}
	return fmt.Errorf("failed to %s: %s", action, err.Error())
}

// displayNoteList renders notes responsively: a table on wide terminals, a
// compact list on narrow ones.
func displayNoteList(list []models.Note, criteria notes.Criteria) {
	if len(list) == 0 {
		if criteria.Empty() {
			fmt.Println("📝 No notes yet.")
			fmt.Println("💡 Create one with 'quill note create'.")
		} else {
			fmt.Println("📝 No notes match the current filter.")
		}
		return
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}

	fmt.Printf("📝 Notes (%d)\n\n", len(list))
	if width < 100 {
		displayNoteListCompact(list)
	} else {
		displayNoteListTable(list, width)
	}
}

func displayNoteListCompact(list []models.Note) {
	for i, n := range list {
		badge := statusBadges[n.Status].Render(string(n.Status))
		fmt.Printf("#%-4d %s  %s\n", n.ID, badge, n.Title)
		if len(n.Tags) > 0 {
			fmt.Printf("      %s\n", renderTagChips(n.Tags))
		}
		if i < len(list)-1 {
			fmt.Println("      ─────────────────────────────")
		}
	}
}

func displayNoteListTable(list []models.Note, termWidth int) {
	idWidth := 6
	statusWidth := 10
	tagsWidth := 24
	modifiedWidth := 16

	titleWidth := termWidth - idWidth - statusWidth - tagsWidth - modifiedWidth - 10
	if titleWidth < 20 {
		titleWidth = 20
	}

	fmt.Printf("%-*s  %-*s  %-*s  %-*s  %-*s\n",
		idWidth, "ID",
		statusWidth, "STATUS",
		titleWidth, "TITLE",
		tagsWidth, "TAGS",
		modifiedWidth, "MODIFIED")
	fmt.Println(strings.Repeat("─", idWidth+statusWidth+titleWidth+tagsWidth+modifiedWidth+8))

	for _, n := range list {
		names := make([]string, 0, len(n.Tags))
		for _, t := range n.Tags {
			names = append(names, t.Name)
		}

		fmt.Printf("%-*d  %-*s  %-*s  %-*s  %-*s\n",
			idWidth, n.ID,
			statusWidth, string(n.Status),
			titleWidth, truncateString(n.Title, titleWidth),
			tagsWidth, truncateString(strings.Join(names, ", "), tagsWidth),
			modifiedWidth, n.LastModified.Format("2006-01-02 15:04"))
	}
}

// renderTagChips renders tags as colored chips using each tag's own color.
func renderTagChips(tags []models.Tag) string {
	chips := make([]string, 0, len(tags))
	for _, t := range tags {
		style := lipgloss.NewStyle().Padding(0, 1)
		if t.Color != "" {
			style = style.Background(lipgloss.Color(t.Color)).Foreground(lipgloss.Color("0"))
		}
		chips = append(chips, style.Render(t.Name))
	}
	return strings.Join(chips, " ")
}
