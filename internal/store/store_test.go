package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"clarity-board/internal/board"
	"clarity-board/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	return Store{
		Dir:     t.TempDir(),
		ActorID: "act-test",
		Now:     func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func TestAddTasks_FetchAllKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.AddTasks(ctx, []NewTask{
		{Task: model.Task{Title: "A"}},
		{ID: "item-fixed", Status: model.StatusInProgress, Task: model.Task{Title: "B", Priority: model.PriorityHigh}},
		{Status: model.StatusCompleted, Task: model.Task{Title: "C"}},
	})
	if err != nil {
		t.Fatalf("add tasks: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 created, got %d", len(created))
	}
	if !strings.HasPrefix(created[0].ID, "item-") || len(created[0].ID) != len("item-")+8 {
		t.Fatalf("unexpected generated id: %q", created[0].ID)
	}
	if created[0].Status != model.StatusTodo {
		t.Fatalf("expected default status todo, got %q", created[0].Status)
	}

	// A second batch lands after the first.
	if _, err := s.AddTasks(ctx, []NewTask{{Task: model.Task{Title: "D"}}}); err != nil {
		t.Fatalf("add second batch: %v", err)
	}

	items, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	var titles []string
	for _, it := range items {
		titles = append(titles, it.Payload.Title)
	}
	if strings.Join(titles, ",") != "A,B,C,D" {
		t.Fatalf("unexpected order: %v", titles)
	}
	if items[1].ID != "item-fixed" || items[1].Payload.Priority != model.PriorityHigh {
		t.Fatalf("payload not round-tripped: %+v", items[1])
	}
}

func TestAddTasks_RejectsBadInput(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddTasks(ctx, []NewTask{{Task: model.Task{Title: "  "}}}); err == nil {
		t.Fatalf("expected error for empty title")
	}
	if _, err := s.AddTasks(ctx, []NewTask{{Status: "blocked", Task: model.Task{Title: "x"}}}); err == nil {
		t.Fatalf("expected error for invalid status")
	}
	items, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("failed batches must not persist anything; got %d items", len(items))
	}
}

func TestSetStatus_UpdatesAndRecordsEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.AddTasks(ctx, []NewTask{{Task: model.Task{Title: "A"}}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	id := created[0].ID

	if err := s.SetStatus(ctx, id, model.StatusInProgress); err != nil {
		t.Fatalf("set status: %v", err)
	}
	items, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if items[0].Status != model.StatusInProgress {
		t.Fatalf("expected in_progress, got %q", items[0].Status)
	}

	evs, err := s.Events(ctx, id, 0)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected create + set_status events, got %d", len(evs))
	}
	if evs[0].Type != "item.create" || evs[1].Type != "item.set_status" {
		t.Fatalf("unexpected event types: %q then %q", evs[0].Type, evs[1].Type)
	}
	payload, ok := evs[1].Payload.(map[string]any)
	if !ok || payload["from"] != "todo" || payload["to"] != "in_progress" {
		t.Fatalf("unexpected payload: %#v", evs[1].Payload)
	}
	if evs[1].ActorID != "act-test" {
		t.Fatalf("unexpected actor: %q", evs[1].ActorID)
	}
	if evs[1].ID == "" || evs[1].ID == evs[0].ID {
		t.Fatalf("expected distinct event ids: %q %q", evs[0].ID, evs[1].ID)
	}
}

func TestSetStatus_SameStatusIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.AddTasks(ctx, []NewTask{{Status: model.StatusCompleted, Task: model.Task{Title: "A"}}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.SetStatus(ctx, created[0].ID, model.StatusCompleted); err != nil {
		t.Fatalf("set status: %v", err)
	}
	evs, err := s.Events(ctx, created[0].ID, 0)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("expected only the create event, got %d", len(evs))
	}
}

func TestSetStatus_Errors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetStatus(ctx, "item-missing", model.StatusTodo); !board.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := s.SetStatus(ctx, "item-missing", "archived"); err == nil || !strings.Contains(err.Error(), "invalid status") {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestEvents_LimitKeepsNewest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddTasks(ctx, []NewTask{
		{ID: "item-a", Task: model.Task{Title: "A"}},
		{ID: "item-b", Task: model.Task{Title: "B"}},
		{ID: "item-c", Task: model.Task{Title: "C"}},
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	evs, err := s.Events(ctx, "", 2)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(evs) != 2 || evs[0].EntityID != "item-b" || evs[1].EntityID != "item-c" {
		t.Fatalf("unexpected tail: %+v", evs)
	}
}

func TestStore_WorksAsBoardBackend(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.AddTasks(ctx, []NewTask{
		{ID: "item-a", Task: model.Task{Title: "A"}},
		{ID: "item-b", Status: model.StatusInProgress, Task: model.Task{Title: "B"}},
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	e := board.New[model.Task](s, s)
	if err := e.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := e.Start("item-a"); err != nil {
		t.Fatalf("start: %v", err)
	}
	res, err := e.Drop("item-b")
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	e.Wait()
	if !res.Committed {
		t.Fatalf("expected commit: %+v", res)
	}

	items, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if items[0].ID != "item-a" || items[0].Status != model.StatusInProgress {
		t.Fatalf("status not persisted: %+v", items[0])
	}
}

func TestConfigDir_EnvOverride(t *testing.T) {
	want := t.TempDir()
	t.Setenv("CLARITY_BOARD_CONFIG_DIR", want)
	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("config dir: %v", err)
	}
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSchemaVersion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	db, err := s.openSQLite(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var v string
	if err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, metaSchemaVersion).Scan(&v); err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if v != "1" {
		t.Fatalf("expected schema version 1, got %q", v)
	}
	if _, err := db.ExecContext(ctx, `UPDATE meta SET v = '99' WHERE k = ?`, metaSchemaVersion); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := s.FetchAll(ctx); err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Fatalf("expected newer-schema error, got %v", err)
	}
}
