package board

import (
	"reflect"
	"slices"
	"testing"

	"clarity-board/internal/model"
)

func TestMove_CrossColumnPlacesAtRank(t *testing.T) {
	items := []item{
		it("a", model.StatusTodo),
		it("b", model.StatusInProgress),
		it("c", model.StatusCompleted),
		it("d", model.StatusInProgress),
		it("e", model.StatusInProgress),
	}

	out, changed, err := Move(items, "a", model.StatusInProgress, 1)
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if !changed {
		t.Fatalf("expected changed=true")
	}
	loc, ok := Locate(out, "a")
	if !ok || loc.Status != model.StatusInProgress || loc.Index != 1 {
		t.Fatalf("a should be in_progress[1]; got %+v", loc)
	}
	if got := ids(Project(out, model.StatusInProgress)); !slices.Equal(got, []string{"b", "a", "d", "e"}) {
		t.Fatalf("in_progress order: got %v", got)
	}
	// Untouched column stays element-for-element equal.
	if !reflect.DeepEqual(Project(out, model.StatusCompleted), Project(items, model.StatusCompleted)) {
		t.Fatalf("completed column changed")
	}
	// Input must not be mutated.
	if items[0].Status != model.StatusTodo {
		t.Fatalf("input slice was mutated")
	}
	if out[slices.IndexFunc(out, func(x item) bool { return x.ID == "a" })].Payload.Title != "title a" {
		t.Fatalf("payload lost")
	}
}

func TestMove_EveryRankInTargetColumn(t *testing.T) {
	items := []item{
		it("x", model.StatusTodo),
		it("p", model.StatusCompleted),
		it("q", model.StatusCompleted),
		it("r", model.StatusCompleted),
	}
	for k := 0; k <= 3; k++ {
		out, _, err := Move(items, "x", model.StatusCompleted, k)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		loc, _ := Locate(out, "x")
		if loc.Status != model.StatusCompleted || loc.Index != k {
			t.Fatalf("k=%d: got %+v", k, loc)
		}
		if len(Project(out, model.StatusTodo)) != 0 {
			t.Fatalf("k=%d: x still in todo", k)
		}
	}
}

func TestMove_SameColumnReorder(t *testing.T) {
	items := []item{
		it("t1", model.StatusTodo),
		it("t2", model.StatusTodo),
		it("z", model.StatusInProgress),
		it("t3", model.StatusTodo),
	}
	out, changed, err := Move(items, "t1", model.StatusTodo, 2)
	if err != nil || !changed {
		t.Fatalf("expected change; err=%v changed=%v", err, changed)
	}
	if got := ids(Project(out, model.StatusTodo)); !slices.Equal(got, []string{"t2", "t3", "t1"}) {
		t.Fatalf("todo order: got %v", got)
	}
	if got := ids(Project(out, model.StatusInProgress)); !slices.Equal(got, []string{"z"}) {
		t.Fatalf("in_progress changed: %v", got)
	}
}

func TestMove_NoOpWhenPlacementMatches(t *testing.T) {
	items := []item{
		it("a", model.StatusTodo),
		it("b", model.StatusInProgress),
		it("c", model.StatusTodo),
	}
	for _, x := range items {
		loc, _ := Locate(items, x.ID)
		out, changed, err := Move(items, x.ID, loc.Status, loc.Index)
		if err != nil {
			t.Fatalf("%s: %v", x.ID, err)
		}
		if changed {
			t.Fatalf("%s: expected changed=false", x.ID)
		}
		if !reflect.DeepEqual(out, items) {
			t.Fatalf("%s: expected equal collection; got %v", x.ID, ids(out))
		}
	}
}

func TestMove_ClampsIndex(t *testing.T) {
	items := []item{
		it("a", model.StatusTodo),
		it("b", model.StatusInProgress),
	}
	out, _, err := Move(items, "a", model.StatusInProgress, 99)
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if got := ids(Project(out, model.StatusInProgress)); !slices.Equal(got, []string{"b", "a"}) {
		t.Fatalf("got %v", got)
	}
	out, _, _ = Move(items, "a", model.StatusInProgress, -4)
	if got := ids(Project(out, model.StatusInProgress)); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("got %v", got)
	}
}

func TestMove_IntoEmptyColumnKeepsFlatPosition(t *testing.T) {
	items := []item{
		it("a", model.StatusTodo),
		it("b", model.StatusTodo),
		it("c", model.StatusInProgress),
	}
	out, _, err := Move(items, "b", model.StatusCompleted, 0)
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if got := ids(out); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("flat order: got %v", got)
	}
	if out[1].Status != model.StatusCompleted {
		t.Fatalf("status not updated: %s", out[1].Status)
	}
}

func TestMove_UnknownTargetStatusTreatedAsTodo(t *testing.T) {
	items := []item{it("a", model.StatusCompleted)}
	out, _, err := Move(items, "a", "nonsense", 0)
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if out[0].Status != model.StatusTodo {
		t.Fatalf("expected todo; got %s", out[0].Status)
	}
}

func TestMove_UnknownItem(t *testing.T) {
	items := []item{it("a", model.StatusTodo)}
	_, _, err := Move(items, "nope", model.StatusTodo, 0)
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
}
