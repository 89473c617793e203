package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"clarity-board/internal/board"
	"clarity-board/internal/tui"
)

const tuiLogFile = "board.log"

func runBoardTUI(cmd *cobra.Command, app *App) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return writeErr(cmd, errNoTerminal)
	}

	// The TUI owns the terminal; logs go to a file in the workspace.
	if err := os.MkdirAll(app.Dir, 0o755); err != nil {
		return writeErr(cmd, err)
	}
	lf, err := os.OpenFile(filepath.Join(app.Dir, tuiLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer lf.Close()
	app.log.SetOutput(lf)

	return withBackendCmd(cmd, app, func(ctx context.Context, be backend) error {
		n := tui.NewNotifier()
		e := newEngine(ctx, app, be, board.WithFailureHandler(n.Failure))
		if err := e.Load(ctx); err != nil {
			return err
		}
		app.log.WithField("backend", app.Backend).Info("board opened")
		return tui.Run(ctx, e, n, app.log)
	})
}
