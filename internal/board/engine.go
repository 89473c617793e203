// Package board is the board synchronization engine.
//
// One flat item collection (Store) is projected into the todo / in_progress /
// completed columns on demand. A drag gesture (Controller) rewrites the store
// optimistically while it is in flight; when the item ends up in a different
// column than it started in, the Synchronizer commits the new status in the
// background and falls back to a full refetch if that commit fails.
package board

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"clarity-board/internal/model"
)

type options struct {
	log       logrus.FieldLogger
	timeout   time.Duration
	onFailure FailureHandler
	ctx       context.Context
}

type Option func(*options)

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// WithCommitTimeout bounds each remote commit and each resync fetch.
func WithCommitTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func WithFailureHandler(fn FailureHandler) Option {
	return func(o *options) { o.onFailure = fn }
}

// WithContext sets the parent context for background commits.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Engine wires the store, the drag controller and the synchronizer together.
type Engine[P any] struct {
	store *Store[P]
	ctrl  *Controller[P]
	sync  *Synchronizer[P]
	dir   TaskDirectory[P]
	log   logrus.FieldLogger
}

func New[P any](dir TaskDirectory[P], persist StatusPersistence, opts ...Option) *Engine[P] {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = discardLogger()
	}
	st := NewStore[P](nil)
	sy := NewSynchronizer(st, dir, persist, opts...)
	return &Engine[P]{
		store: st,
		ctrl:  NewController(st, sy.Dispatch, o.log),
		sync:  sy,
		dir:   dir,
		log:   o.log,
	}
}

// Load fills the store from the task directory.
func (e *Engine[P]) Load(ctx context.Context) error {
	items, err := e.dir.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	e.store.Replace(items)
	e.log.WithField("items", len(items)).Debug("board loaded")
	return nil
}

func (e *Engine[P]) Store() *Store[P] { return e.store }
func (e *Engine[P]) Items() []model.Item[P] { return e.store.Items() }
func (e *Engine[P]) Columns() []Column[P] { return ProjectAll(e.store.Items()) }
func (e *Engine[P]) Session() Session { return e.ctrl.Session() }
func (e *Engine[P]) Subscribe(fn Listener[P]) func() { return e.store.Subscribe(fn) }

func (e *Engine[P]) Start(itemID string) error { return e.ctrl.Start(itemID) }
func (e *Engine[P]) Hover(targetID string) error { return e.ctrl.Hover(targetID) }
func (e *Engine[P]) Drop(targetID string) (DropResult, error) { return e.ctrl.Drop(targetID) }
func (e *Engine[P]) Cancel() error { return e.ctrl.Cancel() }

// Resync discards local state and reloads it from the task directory.
func (e *Engine[P]) Resync(ctx context.Context) error { return e.sync.Resync(ctx) }

// Wait blocks until in-flight commits have settled.
func (e *Engine[P]) Wait() { e.sync.Wait() }
