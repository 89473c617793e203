package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/redis/go-redis/v9"

	"clarity-board/internal/board"
	"clarity-board/internal/model"
	"clarity-board/internal/redisstore"
	"clarity-board/internal/store"
)

// backend is what every command needs from storage. Optional capabilities
// (event log, seeding) are discovered with type assertions.
type backend interface {
	board.TaskDirectory[model.Task]
	board.StatusPersistence
}

type eventSource interface {
	Events(ctx context.Context, itemID string, limit int) ([]model.Event, error)
}

func openBackend(ctx context.Context, app *App) (backend, func(), error) {
	switch app.Backend {
	case backendRedis:
		client := redis.NewClient(&redis.Options{Addr: app.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return redisstore.New(client, app.RedisPrefix), func() { _ = client.Close() }, nil
	default:
		s := store.Store{Dir: app.Dir, ActorID: app.ActorID}
		if err := s.Ensure(); err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

func withBackend(ctx context.Context, app *App, fn func(context.Context, backend) error) error {
	be, closeFn, err := openBackend(ctx, app)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, be)
}

func newEngine(ctx context.Context, app *App, be backend, opts ...board.Option) *board.Engine[model.Task] {
	base := []board.Option{
		board.WithLogger(app.log),
		board.WithCommitTimeout(app.CommitTimeout),
		board.WithContext(ctx),
	}
	return board.New[model.Task](be, be, append(base, opts...)...)
}

// addTasks appends tasks to whichever backend is configured.
func addTasks(ctx context.Context, be backend, tasks []store.NewTask) ([]model.TaskItem, error) {
	switch b := be.(type) {
	case store.Store:
		return b.AddTasks(ctx, tasks)
	case *redisstore.Store:
		items := make([]model.TaskItem, 0, len(tasks))
		for _, nt := range tasks {
			if strings.TrimSpace(nt.Task.Title) == "" {
				return nil, errors.New("title is required")
			}
			id := nt.ID
			if id == "" {
				var err error
				if id, err = store.NewItemID(); err != nil {
					return nil, err
				}
			}
			st := nt.Status
			if st == "" {
				st = model.StatusTodo
			}
			if !st.Valid() {
				return nil, errors.New("invalid status: " + string(st))
			}
			items = append(items, model.TaskItem{ID: id, Status: st, Payload: nt.Task})
		}
		if err := b.Put(ctx, items); err != nil {
			return nil, err
		}
		return items, nil
	default:
		return nil, errors.New("backend does not support adding tasks")
	}
}

func importSeed(ctx context.Context, be backend, r io.Reader) ([]model.TaskItem, error) {
	tasks, err := store.ParseSeed(r)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []model.TaskItem{}, nil
	}
	return addTasks(ctx, be, tasks)
}
