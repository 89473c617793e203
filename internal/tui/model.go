package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"clarity-board/internal/board"
	"clarity-board/internal/model"
	"clarity-board/internal/statusutil"
)

const statusTTL = 5 * time.Second

type (
	snapshotMsg    board.Snapshot[model.Task]
	syncFailedMsg  struct{ failure board.SyncFailure }
	clearStatusMsg struct{ seq int }
	resyncDoneMsg  struct{ err error }
)

type selection struct {
	col    int
	row    int
	itemID string
}

type appModel struct {
	ctx    context.Context
	engine *board.Engine[model.Task]
	log    logrus.FieldLogger

	keys keyMap
	help help.Model

	width  int
	height int

	version uint64
	cols    []board.Column[model.Task]
	offsets []int

	sel selection
	// marker is where a drop lands: an item id (take its slot) or a column id.
	marker    string
	mouseDrag bool

	showHelp  bool
	status    string
	statusErr bool
	statusSeq int
}

func newAppModel(ctx context.Context, e *board.Engine[model.Task], log logrus.FieldLogger) appModel {
	m := appModel{
		ctx:     ctx,
		engine:  e,
		log:     log,
		keys:    newKeyMap(),
		help:    help.New(),
		offsets: make([]int, len(model.Statuses)),
	}
	m.apply(e.Store().Snapshot())
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) dragging() bool { return m.engine.Session().State == board.Dragging }

// apply installs snap unless a newer one is already shown.
func (m *appModel) apply(snap board.Snapshot[model.Task]) {
	if m.cols != nil && snap.Version < m.version {
		return
	}
	m.version = snap.Version
	m.cols = snap.Columns()
	if s := m.engine.Session(); s.State == board.Dragging {
		m.sel.itemID = s.ActiveItemID
		if m.marker == "" {
			m.marker = s.ActiveItemID
		}
	}
	m.clampSelection()
}

func (m *appModel) refresh() { m.apply(m.engine.Store().Snapshot()) }

// clampSelection keeps the selection on a real card, following itemID across
// column changes.
func (m *appModel) clampSelection() {
	if m.sel.itemID != "" {
		for ci, c := range m.cols {
			for ri, it := range c.Items {
				if it.ID == m.sel.itemID {
					m.sel.col, m.sel.row = ci, ri
					m.ensureVisible()
					return
				}
			}
		}
	}
	m.sel.col = max(0, min(m.sel.col, len(m.cols)-1))
	n := len(m.cols[m.sel.col].Items)
	if n == 0 {
		m.sel.row, m.sel.itemID = -1, ""
		return
	}
	m.sel.row = max(0, min(m.sel.row, n-1))
	m.sel.itemID = m.cols[m.sel.col].Items[m.sel.row].ID
	m.ensureVisible()
}

func (m *appModel) ensureVisible() {
	if m.sel.row < 0 {
		return
	}
	vis := newGeometry(m.width, m.height, len(m.cols)).visibleCards()
	off := m.offsets[m.sel.col]
	if m.sel.row < off {
		off = m.sel.row
	}
	if m.sel.row >= off+vis {
		off = m.sel.row - vis + 1
	}
	m.offsets[m.sel.col] = max(0, off)
}

func (m *appModel) selectRow(col, row int) {
	m.sel = selection{col: col, row: row}
	if col >= 0 && col < len(m.cols) && row >= 0 && row < len(m.cols[col].Items) {
		m.sel.itemID = m.cols[col].Items[row].ID
	}
	m.clampSelection()
}

func (m *appModel) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status, m.statusErr = msg, isErr
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m appModel) titleOf(itemID string) string {
	for _, c := range m.cols {
		for _, it := range c.Items {
			if it.ID == itemID {
				if it.Payload.Title != "" {
					return it.Payload.Title
				}
				return it.ID
			}
		}
	}
	return itemID
}

func (m appModel) resyncCmd() tea.Cmd {
	e, ctx := m.engine, m.ctx
	return func() tea.Msg { return resyncDoneMsg{err: e.Resync(ctx)} }
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case snapshotMsg:
		m.apply(board.Snapshot[model.Task](msg))
		return m, nil

	case syncFailedMsg:
		f := msg.failure
		m.refresh()
		text := fmt.Sprintf("%s: %q to %s", f.Reason, m.titleOf(f.ItemID), statusutil.Label(f.Status))
		if f.ResyncErr != nil {
			text += " (reload failed, press r)"
		}
		return m, m.setStatus(text, true)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status, m.statusErr = "", false
		}
		return m, nil

	case resyncDoneMsg:
		m.refresh()
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("manual resync failed")
			return m, m.setStatus("Reload failed: "+msg.err.Error(), true)
		}
		return m, m.setStatus("Reloaded", false)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}
	if m.dragging() {
		return m.handleDragKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.selectRow(m.sel.col-1, m.sel.row)
	case key.Matches(msg, m.keys.Right):
		m.selectRow(m.sel.col+1, m.sel.row)
	case key.Matches(msg, m.keys.Up):
		m.selectRow(m.sel.col, m.sel.row-1)
	case key.Matches(msg, m.keys.Down):
		m.selectRow(m.sel.col, m.sel.row+1)
	case key.Matches(msg, m.keys.PickUp):
		return m, m.start(m.sel.itemID)
	case key.Matches(msg, m.keys.Resync):
		return m, m.resyncCmd()
	}
	return m, nil
}

func (m appModel) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := m.engine.Session().ActiveItemID
	switch {
	case key.Matches(msg, m.keys.Quit):
		_ = m.engine.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		return m, m.cancel()
	case key.Matches(msg, m.keys.Drop):
		return m, m.drop(m.marker)
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		col := m.sel.col - 1
		if key.Matches(msg, m.keys.Right) {
			col = m.sel.col + 1
		}
		if col < 0 || col >= len(m.cols) {
			return m, nil
		}
		return m, m.hover(string(m.cols[col].Status), active)
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		items := m.cols[m.sel.col].Items
		idx := slices.IndexFunc(items, func(it model.TaskItem) bool { return it.ID == m.marker })
		if idx < 0 {
			idx = m.sel.row
		}
		if key.Matches(msg, m.keys.Up) {
			idx--
		} else {
			idx++
		}
		if idx >= 0 && idx < len(items) {
			m.marker = items[idx].ID
		}
	}
	return m, nil
}

func (m *appModel) start(itemID string) tea.Cmd {
	if itemID == "" {
		return nil
	}
	if err := m.engine.Start(itemID); err != nil {
		m.log.WithError(err).WithField("item", itemID).Debug("start drag")
		return m.setStatus(err.Error(), true)
	}
	m.sel.itemID = itemID
	m.marker = itemID
	m.refresh()
	return nil
}

// hover moves the active card over target; marker is where a subsequent drop
// would land.
func (m *appModel) hover(target, marker string) tea.Cmd {
	if err := m.engine.Hover(target); err != nil {
		m.log.WithError(err).WithField("target", target).Debug("hover")
		if errors.Is(err, board.ErrUnresolvedTarget) {
			return nil
		}
		return m.setStatus(err.Error(), true)
	}
	m.marker = marker
	m.refresh()
	return nil
}

func (m *appModel) drop(target string) tea.Cmd {
	res, err := m.engine.Drop(target)
	m.mouseDrag = false
	if err != nil {
		m.log.WithError(err).WithField("target", target).Debug("drop")
		return m.setStatus(err.Error(), true)
	}
	m.marker = ""
	if res.ItemID != "" {
		m.sel.itemID = res.ItemID
	}
	m.refresh()
	m.log.WithFields(logrus.Fields{"item": res.ItemID, "from": res.From, "to": res.To, "committed": res.Committed}).Info("drop")
	if res.Committed {
		return m.setStatus(fmt.Sprintf("Moved %q to %s", m.titleOf(res.ItemID), statusutil.Label(res.To)), false)
	}
	return nil
}

func (m *appModel) cancel() tea.Cmd {
	err := m.engine.Cancel()
	m.mouseDrag = false
	m.marker = ""
	m.refresh()
	if err != nil && !errors.Is(err, board.ErrNoSession) {
		return m.setStatus(err.Error(), true)
	}
	return nil
}

// targetAt maps a screen cell to a drop target: the card under the pointer,
// else the column. Empty when outside the board.
func (m appModel) targetAt(x, y int) string {
	g := newGeometry(m.width, m.height, len(m.cols))
	if !g.inBoard(x, y) {
		return ""
	}
	col := g.columnAt(x)
	if slot := g.cardAt(y); slot >= 0 {
		if idx := m.offsets[col] + slot; idx < len(m.cols[col].Items) {
			return m.cols[col].Items[idx].ID
		}
	}
	return string(m.cols[col].Status)
}

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	g := newGeometry(m.width, m.height, len(m.cols))

	if m.mouseDrag {
		switch msg.Action {
		case tea.MouseActionMotion:
			target := m.targetAt(msg.X, msg.Y)
			if target == "" || target == m.marker {
				return m, nil
			}
			return m, m.hover(target, target)
		case tea.MouseActionRelease:
			// Outside the board: empty target cancels.
			return m, m.drop(m.targetAt(msg.X, msg.Y))
		}
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if col := g.columnAt(msg.X); col >= 0 {
			delta := 1
			if msg.Button == tea.MouseButtonWheelUp {
				delta = -1
			}
			maxOff := max(0, len(m.cols[col].Items)-g.visibleCards())
			m.offsets[col] = max(0, min(m.offsets[col]+delta, maxOff))
		}
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || m.dragging() {
			return m, nil
		}
		target := m.targetAt(msg.X, msg.Y)
		if target == "" || statusutil.IsColumnID(target) {
			if col := g.columnAt(msg.X); col >= 0 {
				m.selectRow(col, m.sel.row)
			}
			return m, nil
		}
		m.sel.itemID = target
		m.clampSelection()
		cmd := m.start(target)
		m.mouseDrag = m.dragging()
		return m, cmd
	}
	return m, nil
}
