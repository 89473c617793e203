package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"clarity-board/internal/store"
)

const (
	envPrefix      = "CLARITY_BOARD"
	configFileName = "board.yaml"

	backendSQLite = "sqlite"
	backendRedis  = "redis"
)

// loadConfig resolves settings with precedence flags > CLARITY_BOARD_* env >
// <dir>/board.yaml > defaults.
func (app *App) loadConfig(cmd *cobra.Command) error {
	v := app.v
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	flags := cmd.Flags()
	bind := map[string]string{
		"dir":            "dir",
		"backend":        "backend",
		"redis.addr":     "redis-addr",
		"redis.prefix":   "redis-prefix",
		"commit_timeout": "commit-timeout",
		"log_level":      "log-level",
		"actor":          "actor",
		"pretty":         "pretty",
		"format":         "format",
	}
	for key, name := range bind {
		if fl := flags.Lookup(name); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return err
			}
		}
	}

	dir := strings.TrimSpace(v.GetString("dir"))
	if dir == "" {
		d, err := store.ConfigDir()
		if err != nil {
			return err
		}
		dir = d
	}
	app.Dir = dir

	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	app.Backend = strings.ToLower(strings.TrimSpace(v.GetString("backend")))
	switch app.Backend {
	case backendSQLite, backendRedis:
	default:
		return fmt.Errorf("unknown backend: %s (expected sqlite|redis)", app.Backend)
	}
	app.RedisAddr = v.GetString("redis.addr")
	app.RedisPrefix = v.GetString("redis.prefix")
	app.CommitTimeout = v.GetDuration("commit_timeout")
	if app.CommitTimeout <= 0 {
		return fmt.Errorf("commit_timeout must be positive, got %s", app.CommitTimeout)
	}
	app.ActorID = v.GetString("actor")
	app.PrettyJSON = v.GetBool("pretty")
	app.Format = v.GetString("format")

	app.LogLevel = v.GetString("log_level")
	lvl, err := logrus.ParseLevel(app.LogLevel)
	if err != nil {
		return err
	}
	app.log.SetLevel(lvl)
	app.log.SetOutput(cmd.ErrOrStderr())
	app.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return nil
}
