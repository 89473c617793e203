package board

import (
	"slices"
	"sort"
	"testing"

	"clarity-board/internal/model"
)

func TestProjectAll_CoversEveryItemExactlyOnce(t *testing.T) {
	items := []item{
		it("a", model.StatusTodo),
		it("b", model.StatusCompleted),
		it("c", "bogus"),
		it("d", model.StatusInProgress),
		it("e", ""),
		it("f", model.StatusTodo),
	}

	cols := ProjectAll(items)
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns; got %d", len(cols))
	}

	var got []string
	for _, c := range cols {
		got = append(got, ids(c.Items)...)
	}
	want := ids(items)
	sort.Strings(got)
	sort.Strings(want)
	if !slices.Equal(got, want) {
		t.Fatalf("union mismatch: got %v want %v", got, want)
	}
}

func TestProject_UnknownStatusFallsIntoTodoInOrder(t *testing.T) {
	items := []item{
		it("a", "bogus"),
		it("b", model.StatusInProgress),
		it("c", model.StatusTodo),
		it("d", ""),
	}

	if got := ids(Project(items, model.StatusTodo)); !slices.Equal(got, []string{"a", "c", "d"}) {
		t.Fatalf("todo column: got %v", got)
	}
	if got := ids(Project(items, model.StatusInProgress)); !slices.Equal(got, []string{"b"}) {
		t.Fatalf("in_progress column: got %v", got)
	}
	if got := Project(items, model.StatusCompleted); len(got) != 0 {
		t.Fatalf("completed column should be empty; got %v", ids(got))
	}
	// Payload and the raw status value pass through untouched.
	if todo := Project(items, model.StatusTodo); todo[0].Status != "bogus" || todo[0].Payload.Title != "title a" {
		t.Fatalf("item was rewritten by projection: %+v", todo[0])
	}
}

func TestProjectAll_ColumnOrderMatchesBoard(t *testing.T) {
	cols := ProjectAll[card](nil)
	for i, st := range model.Statuses {
		if cols[i].Status != st {
			t.Fatalf("column %d: expected %s; got %s", i, st, cols[i].Status)
		}
	}
}

func TestProject_StatusAliasesAreNotColumns(t *testing.T) {
	items := []item{it("x", "done"), it("y", "doing"), it("z", model.StatusCompleted)}

	if got := ids(Project(items, model.StatusTodo)); !slices.Equal(got, []string{"x", "y"}) {
		t.Fatalf("todo: got %v", got)
	}
	if got := ids(Project(items, model.StatusInProgress)); len(got) != 0 {
		t.Fatalf("in_progress: got %v", got)
	}
	if got := ids(Project(items, model.StatusCompleted)); !slices.Equal(got, []string{"z"}) {
		t.Fatalf("completed: got %v", got)
	}
}
