package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"clarity-board/internal/model"
)

type eventsOut struct {
	Data []model.Event `json:"data"`
}

func (o eventsOut) Header() table.Row {
	return table.Row{"Time", "Type", "Entity", "Actor", "Payload"}
}

func (o eventsOut) Rows() []table.Row {
	rows := make([]table.Row, 0, len(o.Data))
	for _, ev := range o.Data {
		payload, _ := json.Marshal(ev.Payload)
		rows = append(rows, table.Row{ev.TS.Format(time.RFC3339), ev.Type, ev.EntityID, ev.ActorID, string(payload)})
	}
	return rows
}

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events [item-id]",
		Short: "List the event log (oldest-first)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID := ""
			if len(args) == 1 {
				itemID = args[0]
			}
			return withBackendCmd(cmd, app, func(ctx context.Context, be backend) error {
				src, ok := be.(eventSource)
				if !ok {
					return errNoEventLog
				}
				evs, err := src.Events(ctx, itemID, limit)
				if err != nil {
					return err
				}
				if evs == nil {
					evs = []model.Event{}
				}
				return writeOut(cmd, app, eventsOut{Data: evs})
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 200, "Max events to return (0 = all)")
	return cmd
}
