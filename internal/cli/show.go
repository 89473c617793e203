package cli

import (
	"context"

	"github.com/spf13/cobra"

	"clarity-board/internal/board"
	"clarity-board/internal/model"
	"clarity-board/internal/statusutil"
)

type showOut struct {
	Data struct {
		Item   model.TaskItem `json:"item"`
		Column model.Status   `json:"column"`
		Label  string         `json:"label"`
		Index  int            `json:"index"`
		Events []model.Event  `json:"events,omitempty"`
	} `json:"data"`
}

func newShowCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item and where it sits on the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID := args[0]
			return withBackendCmd(cmd, app, func(ctx context.Context, be backend) error {
				items, err := be.FetchAll(ctx)
				if err != nil {
					return err
				}
				loc, ok := board.Locate(items, itemID)
				if !ok {
					return board.NotFoundError{Kind: "item", ID: itemID}
				}
				var out showOut
				for _, it := range items {
					if it.ID == itemID {
						out.Data.Item = it
						break
					}
				}
				out.Data.Column = loc.Status
				out.Data.Label = statusutil.Label(loc.Status)
				out.Data.Index = loc.Index
				if src, ok := be.(eventSource); ok {
					evs, err := src.Events(ctx, itemID, limit)
					if err != nil {
						return err
					}
					out.Data.Events = evs
				}
				return writeOut(cmd, app, out)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "events", 20, "Max recent events to include (sqlite backend)")
	return cmd
}
