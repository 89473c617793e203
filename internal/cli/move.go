package cli

import (
	"context"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"clarity-board/internal/board"
	"clarity-board/internal/model"
)

type moveOut struct {
	Item      string       `json:"item"`
	From      model.Status `json:"from"`
	To        model.Status `json:"to"`
	Index     int          `json:"index"`
	Committed bool         `json:"committed"`
	Pending   bool         `json:"pending,omitempty"`
	Error     string       `json:"error,omitempty"`
}

type moveEnvelope struct {
	Data moveOut `json:"data"`
}

func (m moveEnvelope) Header() table.Row {
	return table.Row{"Item", "From", "To", "Index", "Committed", "Error"}
}

func (m moveEnvelope) Rows() []table.Row {
	d := m.Data
	return []table.Row{{d.Item, d.From, d.To, d.Index, d.Committed, d.Error}}
}

func newMoveCmd(app *App) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "move <item-id> <target>",
		Short: "Drag an item onto a column or onto another item",
		Long: `Runs one drag gesture through the board engine: pick up <item-id>, hover
<target>, drop on <target>. <target> is a column id (todo, in_progress,
completed) or another item's id, in which case the item lands just before it.

Only a column change is persisted; reordering within a column is local to the
board session.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, targetID := args[0], args[1]
			return withBackendCmd(cmd, app, func(ctx context.Context, be backend) error {
				var (
					mu      sync.Mutex
					failure *board.SyncFailure
				)
				e := newEngine(ctx, app, be, board.WithFailureHandler(func(f board.SyncFailure) {
					mu.Lock()
					failure = &f
					mu.Unlock()
				}))
				if err := e.Load(ctx); err != nil {
					return err
				}

				log := app.log.WithFields(logrus.Fields{"item": itemID, "target": describeTarget(targetID)})
				if err := e.Start(itemID); err != nil {
					return err
				}
				if err := e.Hover(targetID); err != nil {
					_ = e.Cancel()
					return err
				}
				res, err := e.Drop(targetID)
				if err != nil {
					_ = e.Cancel()
					return err
				}
				log.WithFields(logrus.Fields{"from": res.From, "to": res.To, "committed": res.Committed}).Debug("dropped")

				out := moveOut{Item: res.ItemID, From: res.From, To: res.To, Index: res.Index, Committed: res.Committed}
				if !wait {
					out.Pending = res.Committed
					// The commit still has to land before the process exits.
					defer e.Wait()
					return writeOut(cmd, app, moveEnvelope{Data: out})
				}

				e.Wait()
				mu.Lock()
				f := failure
				mu.Unlock()
				if f != nil {
					out.Committed = false
					out.Error = f.Error()
				}
				if err := writeOut(cmd, app, moveEnvelope{Data: out}); err != nil {
					return err
				}
				if f != nil {
					return *f
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", true, "Wait for the status commit and report its outcome")
	return cmd
}
