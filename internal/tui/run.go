package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"clarity-board/internal/board"
	"clarity-board/internal/model"
)

// Notifier forwards engine callbacks that fire off the UI goroutine into the
// running program. It must exist before the engine is built, so it is created
// first and attached by Run.
type Notifier struct {
	mu sync.Mutex
	p  *tea.Program
}

func NewNotifier() *Notifier { return &Notifier{} }

// Failure is a board.FailureHandler.
func (n *Notifier) Failure(f board.SyncFailure) { n.send(syncFailedMsg{failure: f}) }

func (n *Notifier) attach(p *tea.Program) {
	n.mu.Lock()
	n.p = p
	n.mu.Unlock()
}

func (n *Notifier) send(msg tea.Msg) {
	n.mu.Lock()
	p := n.p
	n.mu.Unlock()
	if p == nil {
		return
	}
	// Send blocks until Update consumes the message; callers may be inside Update.
	go p.Send(msg)
}

// Run shows the board until the user quits. e must already be loaded.
func Run(ctx context.Context, e *board.Engine[model.Task], n *Notifier, log logrus.FieldLogger) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	if n == nil {
		n = NewNotifier()
	}
	p := tea.NewProgram(
		newAppModel(ctx, e, log),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	n.attach(p)
	defer n.attach(nil)

	unsub := e.Subscribe(func(s board.Snapshot[model.Task]) { n.send(snapshotMsg(s)) })
	defer unsub()

	_, err := p.Run()
	// Let in-flight commits land before the caller closes the backend.
	e.Wait()
	return err
}
