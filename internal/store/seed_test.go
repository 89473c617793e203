package store

import (
	"context"
	"strings"
	"testing"

	"clarity-board/internal/model"
)

const seedDoc = `
tasks:
  - title: Draft roadmap
    priority: high
    category: planning
  - id: item-review
    title: Review PR
    status: doing
    dueDate:
      date: "2026-02-01"
    subtasks:
      - title: read diff
        done: true
  - title: Ship it
    status: done
    pinned: true
`

func TestParseSeed_ResolvesAliases(t *testing.T) {
	tasks, err := ParseSeed(strings.NewReader(seedDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].Status != model.StatusTodo || tasks[1].Status != model.StatusInProgress || tasks[2].Status != model.StatusCompleted {
		t.Fatalf("unexpected statuses: %q %q %q", tasks[0].Status, tasks[1].Status, tasks[2].Status)
	}
	if tasks[1].ID != "item-review" || tasks[1].Task.DueDate == nil || tasks[1].Task.DueDate.Date != "2026-02-01" {
		t.Fatalf("unexpected second task: %+v", tasks[1])
	}
	if len(tasks[1].Task.Subtasks) != 1 || !tasks[1].Task.Subtasks[0].Done {
		t.Fatalf("subtasks not parsed: %+v", tasks[1].Task.Subtasks)
	}
	if !tasks[2].Task.Pinned {
		t.Fatalf("expected pinned")
	}
}

func TestParseSeed_Errors(t *testing.T) {
	cases := map[string]string{
		"bad status":    "tasks:\n  - title: x\n    status: blocked\n",
		"missing title": "tasks:\n  - status: todo\n",
		"unknown field": "tasks:\n  - title: x\n    owner: me\n",
	}
	for name, doc := range cases {
		if _, err := ParseSeed(strings.NewReader(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestImportYAML(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.ImportYAML(ctx, strings.NewReader(seedDoc))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 created, got %d", len(created))
	}
	items, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if items[1].ID != "item-review" || items[1].Payload.Category != "" || items[0].Payload.Category != "planning" {
		t.Fatalf("unexpected items: %+v", items)
	}

	empty, err := s.ImportYAML(ctx, strings.NewReader(""))
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty document: %v %v", empty, err)
	}
}
