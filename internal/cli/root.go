package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clarity-board/internal/board"
	"clarity-board/internal/format"
)

type App struct {
	Dir           string
	Backend       string
	RedisAddr     string
	RedisPrefix   string
	CommitTimeout time.Duration
	LogLevel      string
	ActorID       string
	PrettyJSON    bool
	Format        string

	v   *viper.Viper
	log *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{v: viper.New(), log: logrus.New()}

	cmd := &cobra.Command{
		Use:          "clarity-board",
		Short:        "Kanban board over a local or shared task directory",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  clarity-board

  # Scriptable commands
  clarity-board columns --format table
  clarity-board move item-4k2jq7xa in_progress

  # Direct item lookup (shortcut for: clarity-board show <item-id>)
  clarity-board item-4k2jq7xa
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runBoardTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.loadConfig(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}

	f := cmd.PersistentFlags()
	f.StringVar(&app.Dir, "dir", "", "Workspace directory (default ~/.clarity-board)")
	f.String("backend", "sqlite", "Storage backend (sqlite|redis)")
	f.String("redis-addr", "localhost:6379", "Redis address (redis backend)")
	f.String("redis-prefix", "board", "Redis key prefix (redis backend)")
	f.Duration("commit-timeout", board.DefaultCommitTimeout, "Timeout for each status commit and resync")
	f.String("log-level", "warn", "Log level (debug|info|warn|error)")
	f.String("actor", "", "Actor id recorded on events")
	f.Bool("pretty", false, "Pretty-print JSON output")
	f.String("format", "json", "Output format (json|table)")

	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
