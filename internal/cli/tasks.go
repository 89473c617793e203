package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"clarity-board/internal/model"
	"clarity-board/internal/statusutil"
	"clarity-board/internal/store"
)

type itemsOut struct {
	Data []model.TaskItem `json:"data"`
}

func (o itemsOut) Header() table.Row {
	return table.Row{"ID", "Status", "Title", "Priority", "Category"}
}

func (o itemsOut) Rows() []table.Row {
	rows := make([]table.Row, 0, len(o.Data))
	for _, it := range o.Data {
		rows = append(rows, table.Row{it.ID, it.Status, it.Payload.Title, it.Payload.Priority, it.Payload.Category})
	}
	return rows
}

func parsePriority(s string) (model.Priority, error) {
	switch p := model.Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return "", nil
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return p, nil
	default:
		return "", errors.New("invalid priority: " + s + " (expected low|medium|high)")
	}
}

func newAddCmd(app *App) *cobra.Command {
	var (
		status   string
		priority string
		category string
		due      string
		pinned   bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Append a task to the board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return writeErr(cmd, errors.New("title is required"))
			}
			st, err := statusutil.Parse(status)
			if err != nil {
				return writeErr(cmd, err)
			}
			pr, err := parsePriority(priority)
			if err != nil {
				return writeErr(cmd, err)
			}
			dueDate, err := parseDue(due)
			if err != nil {
				return writeErr(cmd, err)
			}
			task := model.Task{
				Title:    title,
				Priority: pr,
				Category: strings.TrimSpace(category),
				DueDate:  dueDate,
				Pinned:   pinned,
			}
			return withBackendCmd(cmd, app, func(ctx context.Context, be backend) error {
				created, err := addTasks(ctx, be, []store.NewTask{{Status: st, Task: task}})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, itemsOut{Data: created})
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "todo", "Initial column (todo|in_progress|completed)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high)")
	cmd.Flags().StringVar(&category, "category", "", "Category label")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "Pin the task")
	return cmd
}

func newSeedCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import tasks from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader
			switch strings.TrimSpace(file) {
			case "":
				return writeErr(cmd, errors.New("missing --file"))
			case "-":
				r = cmd.InOrStdin()
			default:
				f, err := os.Open(file)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}
			return withBackendCmd(cmd, app, func(ctx context.Context, be backend) error {
				created, err := importSeed(ctx, be, r)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, itemsOut{Data: created})
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Seed file (YAML, '-' for stdin)")
	return cmd
}
