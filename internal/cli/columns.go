package cli

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"clarity-board/internal/board"
	"clarity-board/internal/model"
	"clarity-board/internal/statusutil"
)

type columnOut struct {
	Status model.Status     `json:"status"`
	Label  string           `json:"label"`
	Count  int              `json:"count"`
	Items  []model.TaskItem `json:"items"`
}

type columnsOut struct {
	Data []columnOut `json:"data"`
}

func (c columnsOut) Header() table.Row {
	return table.Row{"Column", "#", "ID", "Title", "Priority", "Due"}
}

func (c columnsOut) Rows() []table.Row {
	var rows []table.Row
	for _, col := range c.Data {
		if len(col.Items) == 0 {
			rows = append(rows, table.Row{col.Label, "", "", "", "", ""})
			continue
		}
		for i, it := range col.Items {
			due := ""
			if it.Payload.DueDate != nil {
				due = it.Payload.DueDate.Date
			}
			rows = append(rows, table.Row{col.Label, i, it.ID, it.Payload.Title, it.Payload.Priority, due})
		}
	}
	return rows
}

func toColumnsOut(cols []board.Column[model.Task]) columnsOut {
	out := columnsOut{Data: make([]columnOut, 0, len(cols))}
	for _, c := range cols {
		items := c.Items
		if items == nil {
			items = []model.TaskItem{}
		}
		out.Data = append(out.Data, columnOut{
			Status: c.Status,
			Label:  statusutil.Label(c.Status),
			Count:  len(items),
			Items:  items,
		})
	}
	return out
}

func newColumnsCmd(app *App) *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Print the board columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackendCmd(cmd, app, func(ctx context.Context, be backend) error {
				e := newEngine(ctx, app, be)
				if err := e.Load(ctx); err != nil {
					return err
				}
				out := toColumnsOut(e.Columns())
				if only != "" {
					st, err := statusutil.Parse(only)
					if err != nil {
						return err
					}
					out.Data = []columnOut{out.Data[statusutil.ColumnIndex(st)]}
				}
				return writeOut(cmd, app, out)
			})
		},
	}
	cmd.Flags().StringVar(&only, "status", "", "Only print one column (todo|in_progress|completed)")
	return cmd
}

// withBackendCmd runs fn against the configured backend and routes errors to
// stderr.
func withBackendCmd(cmd *cobra.Command, app *App, fn func(context.Context, backend) error) error {
	if err := withBackend(cmd.Context(), app, fn); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func describeTarget(targetID string) string {
	if statusutil.IsColumnID(targetID) {
		return fmt.Sprintf("column %s", targetID)
	}
	return fmt.Sprintf("item %s", targetID)
}
