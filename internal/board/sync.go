package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"clarity-board/internal/model"
)

// FailureReason is the user-facing text attached to every sync failure.
const FailureReason = "Failed to sync move"

const DefaultCommitTimeout = 10 * time.Second

// TaskDirectory is the source of truth the board is loaded from.
type TaskDirectory[P any] interface {
	FetchAll(ctx context.Context) ([]model.Item[P], error)
}

// StatusPersistence commits a single status change. Any error counts as failure.
type StatusPersistence interface {
	SetStatus(ctx context.Context, itemID string, status model.Status) error
}

// SyncFailure is raised when a commit is rejected or times out.
type SyncFailure struct {
	ItemID string       `json:"itemId"`
	Status model.Status `json:"status"`
	Reason string       `json:"reason"`
	Err    error        `json:"-"`
	// ResyncErr is set when the follow-up refetch failed too; local state is
	// then left as it was.
	ResyncErr error `json:"-"`
}

func (f SyncFailure) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %v", f.Reason, f.ItemID, f.Status, f.Err)
}

type FailureHandler func(SyncFailure)

// Synchronizer pushes cross-column moves to StatusPersistence and, when a
// push fails, throws local state away in favour of a fresh TaskDirectory read.
type Synchronizer[P any] struct {
	store     *Store[P]
	dir       TaskDirectory[P]
	persist   StatusPersistence
	timeout   time.Duration
	log       logrus.FieldLogger
	onFailure FailureHandler

	base     context.Context
	inflight sync.WaitGroup
	resync   singleflight.Group
}

func NewSynchronizer[P any](store *Store[P], dir TaskDirectory[P], persist StatusPersistence, opts ...Option) *Synchronizer[P] {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.timeout <= 0 {
		o.timeout = DefaultCommitTimeout
	}
	if o.log == nil {
		o.log = discardLogger()
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}
	return &Synchronizer[P]{
		store:     store,
		dir:       dir,
		persist:   persist,
		timeout:   o.timeout,
		log:       o.log,
		onFailure: o.onFailure,
		base:      o.ctx,
	}
}

// Dispatch runs Commit in the background. It satisfies CommitFunc.
func (s *Synchronizer[P]) Dispatch(itemID string, status model.Status) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		_ = s.Commit(s.base, itemID, status)
	}()
}

// Wait blocks until every dispatched commit (and its resync) has finished.
func (s *Synchronizer[P]) Wait() { s.inflight.Wait() }

// Commit writes the new status. On failure it resyncs the store and reports a
// SyncFailure; the returned error is the commit error.
func (s *Synchronizer[P]) Commit(ctx context.Context, itemID string, status model.Status) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	err := s.persist.SetStatus(cctx, itemID, status)
	if err == nil && cctx.Err() != nil {
		// Persistence that ignores ctx still fails closed once the deadline passed.
		err = cctx.Err()
	}
	cancel()

	entry := s.log.WithFields(logrus.Fields{"item": itemID, "status": status})
	if err == nil {
		entry.Debug("commit ok")
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		entry = entry.WithField("timeout", s.timeout)
	}
	entry.WithError(err).Warn("commit failed; resyncing")

	failure := SyncFailure{ItemID: itemID, Status: status, Reason: FailureReason, Err: err}
	if rerr := s.Resync(ctx); rerr != nil {
		failure.ResyncErr = rerr
	}
	if s.onFailure != nil {
		s.onFailure(failure)
	}
	return err
}

// Resync replaces the store with a fresh TaskDirectory read. Concurrent calls
// share one fetch.
func (s *Synchronizer[P]) Resync(ctx context.Context) error {
	_, err, shared := s.resync.Do("resync", func() (any, error) {
		fctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		items, err := s.dir.FetchAll(fctx)
		if err != nil {
			return nil, fmt.Errorf("fetch all: %w", err)
		}
		changed := s.store.Replace(items)
		s.log.WithFields(logrus.Fields{"items": len(items), "changed": changed}).Debug("resync")
		return nil, nil
	})
	if err != nil {
		s.log.WithError(err).WithField("shared", shared).Error("resync failed")
	}
	return err
}
