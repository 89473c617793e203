package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"clarity-board/internal/docs"
)

type topicsOut struct {
	Data struct {
		Topics []string `json:"topics"`
	} `json:"data"`
}

func (o topicsOut) Header() table.Row { return table.Row{"Topic"} }

func (o topicsOut) Rows() []table.Row {
	rows := make([]table.Row, 0, len(o.Data.Topics))
	for _, t := range o.Data.Topics {
		rows = append(rows, table.Row{t})
	}
	return rows
}

type topicOut struct {
	Data struct {
		Topic    string `json:"topic"`
		Markdown string `json:"markdown"`
	} `json:"data"`
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				var out topicsOut
				out.Data.Topics = docs.Topics()
				return writeOut(cmd, app, out)
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `clarity-board docs` to list topics)", topic))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			var out topicOut
			out.Data.Topic = topic
			out.Data.Markdown = body
			return writeOut(cmd, app, out)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	return cmd
}
