package board

import (
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"clarity-board/internal/model"
)

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Session describes the in-flight gesture. Current is recomputed from the
// store on every read.
type Session struct {
	State        State    `json:"state"`
	ActiveItemID string   `json:"activeItemId,omitempty"`
	Origin       Location `json:"origin"`
	Current      Location `json:"current"`
}

// DropResult reports what a completed gesture did.
type DropResult struct {
	ItemID string       `json:"itemId"`
	From   model.Status `json:"from"`
	To     model.Status `json:"to"`
	Index  int          `json:"index"`
	// Committed is true when a status change was handed to the synchronizer.
	Committed bool `json:"committed"`
}

// CommitFunc hands a cross-column move to persistence. It must not block.
type CommitFunc func(itemID string, status model.Status)

// Controller is the drag state machine: Idle -> Dragging -> Idle.
type Controller[P any] struct {
	store  *Store[P]
	commit CommitFunc
	log    logrus.FieldLogger

	mu     sync.Mutex
	state  State
	active string
	origin Location
	// Flat position and status at Start; Cancel restores both exactly.
	originPos    int
	originStatus model.Status
}

func NewController[P any](store *Store[P], commit CommitFunc, log logrus.FieldLogger) *Controller[P] {
	if log == nil {
		log = discardLogger()
	}
	return &Controller[P]{store: store, commit: commit, log: log}
}

func (c *Controller[P]) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Session{State: c.state, ActiveItemID: c.active, Origin: c.origin}
	if c.state == Dragging {
		if cur, ok := Locate(c.store.Items(), c.active); ok {
			s.Current = cur
		}
	}
	return s
}

// Start begins a gesture on itemID and remembers where it came from.
func (c *Controller[P]) Start(itemID string) error {
	itemID = strings.TrimSpace(itemID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Dragging {
		return ErrSessionActive
	}
	items := c.store.Items()
	loc, ok := Locate(items, itemID)
	if !ok {
		return NotFoundError{Kind: "item", ID: itemID}
	}
	pos := indexOf(items, itemID)
	c.state = Dragging
	c.active = itemID
	c.origin = loc
	c.originPos = pos
	c.originStatus = items[pos].Status
	c.log.WithFields(logrus.Fields{"item": itemID, "status": loc.Status, "index": loc.Index}).Debug("drag start")
	return nil
}

// Hover moves the item into the hovered column when it differs from the one
// the item is in now. Hovering inside the current column changes nothing.
func (c *Controller[P]) Hover(targetID string) error {
	c.mu.Lock()
	if c.state != Dragging {
		c.mu.Unlock()
		return ErrNoSession
	}
	active := c.active
	snap, changed, err := c.store.mutate(func(items []model.Item[P]) ([]model.Item[P], bool, error) {
		src, target, err := c.resolve(items, active, targetID)
		if err != nil {
			return items, false, err
		}
		if target.Status == src.Status {
			return items, false, nil
		}
		return Move(items, active, target.Status, insertionIndex(src, target))
	})
	c.mu.Unlock()

	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{"item": active, "target": targetID}).Debug("hover ignored")
		return err
	}
	if changed {
		c.store.publish(snap)
	}
	return nil
}

// Drop finishes the gesture over targetID. An empty target means the pointer
// was released outside the board and is handled as Cancel. An unknown target
// is ignored and the session stays open.
func (c *Controller[P]) Drop(targetID string) (DropResult, error) {
	if strings.TrimSpace(targetID) == "" {
		return DropResult{}, c.Cancel()
	}

	c.mu.Lock()
	if c.state != Dragging {
		c.mu.Unlock()
		return DropResult{}, ErrNoSession
	}
	active := c.active
	origin := c.origin
	var final Location
	snap, changed, err := c.store.mutate(func(items []model.Item[P]) ([]model.Item[P], bool, error) {
		src, target, err := c.resolve(items, active, targetID)
		if err != nil {
			return items, false, err
		}
		next, changed, err := Move(items, active, target.Status, insertionIndex(src, target))
		if err != nil {
			return items, false, err
		}
		final, _ = Locate(next, active)
		return next, changed, nil
	})
	if err != nil {
		c.mu.Unlock()
		c.log.WithError(err).WithFields(logrus.Fields{"item": active, "target": targetID}).Debug("drop ignored")
		return DropResult{}, err
	}
	c.reset()
	c.mu.Unlock()

	if changed {
		c.store.publish(snap)
	}

	res := DropResult{ItemID: active, From: origin.Status, To: final.Status, Index: final.Index}
	if final.Status != origin.Status && c.commit != nil {
		c.commit(active, final.Status)
		res.Committed = true
	}
	c.log.WithFields(logrus.Fields{"item": active, "from": res.From, "to": res.To, "index": res.Index}).Debug("drag drop")
	return res, nil
}

// Cancel puts the item back where Start found it and ends the gesture.
func (c *Controller[P]) Cancel() error {
	c.mu.Lock()
	if c.state != Dragging {
		c.mu.Unlock()
		return ErrNoSession
	}
	active := c.active
	origin := c.origin
	pos, status := c.originPos, c.originStatus
	snap, changed, err := c.store.mutate(func(items []model.Item[P]) ([]model.Item[P], bool, error) {
		return restore(items, active, pos, status)
	})
	c.reset()
	c.mu.Unlock()

	if err != nil {
		if IsNotFound(err) {
			// The item vanished in a resync; there is nothing left to restore.
			c.log.WithField("item", active).Debug("drag cancel: item gone")
			return nil
		}
		return err
	}
	if changed {
		c.store.publish(snap)
	}
	c.log.WithFields(logrus.Fields{"item": active, "status": origin.Status, "index": origin.Index}).Debug("drag cancel")
	return nil
}

func (c *Controller[P]) reset() {
	c.state = Idle
	c.active = ""
	c.origin = Location{}
	c.originPos = 0
	c.originStatus = ""
}

// restore puts itemID back at flat index pos with its original status. The
// payload is the current one. pos is clamped if the collection shrank.
func restore[P any](items []model.Item[P], itemID string, pos int, status model.Status) ([]model.Item[P], bool, error) {
	from := indexOf(items, itemID)
	if from < 0 {
		return items, false, NotFoundError{Kind: "item", ID: itemID}
	}
	pos = max(0, min(pos, len(items)-1))
	if from == pos && items[from].Status == status {
		return items, false, nil
	}
	moved := items[from]
	moved.Status = status

	out := make([]model.Item[P], 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	out = slices.Insert(out, pos, moved)
	return out, true, nil
}

func indexOf[P any](items []model.Item[P], itemID string) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func (c *Controller[P]) resolve(items []model.Item[P], active, targetID string) (src, target Location, err error) {
	src, ok := Locate(items, active)
	if !ok {
		return Location{}, Location{}, NotFoundError{Kind: "item", ID: active}
	}
	target, ok = LocateTarget(items, targetID)
	if !ok {
		return Location{}, Location{}, ErrUnresolvedTarget
	}
	return src, target, nil
}
