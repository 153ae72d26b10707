package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/ironclad/anchor/internal/model"
)

func newTestStore() *Store {
	s := New(NoopEffects{})
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return s
}

func collectIDs(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

// assertExclusiveOwnership checks the core invariant: every id in exactly
// one collection.
func assertExclusiveOwnership(t *testing.T, st State) {
	t.Helper()
	seen := make(map[string]string)
	for name, coll := range map[string][]model.Task{"stack": st.Stack, "backlog": st.Backlog, "history": st.History} {
		for _, task := range coll {
			if prev, ok := seen[task.ID]; ok {
				t.Fatalf("task %s present in both %s and %s", task.ID, prev, name)
			}
			seen[task.ID] = name
		}
	}
}

func TestAddTaskNowBecomesAnchor(t *testing.T) {
	s := newTestStore()
	s.AddTask("first", true, nil, nil)
	s.AddTask("second", true, nil, nil)

	st := s.Snapshot()
	if len(st.Stack) != 2 {
		t.Fatalf("expected 2 stack tasks, got %d", len(st.Stack))
	}
	if st.Stack[0].Text != "second" {
		t.Fatalf("expected new task to be the anchor, got %q", st.Stack[0].Text)
	}
	if st.Stack[0].Type != model.TaskNow {
		t.Fatalf("expected NOW type, got %q", st.Stack[0].Type)
	}
	if st.TimerStart == nil {
		t.Fatal("expected timer to be running")
	}
	assertExclusiveOwnership(t, st)
}

func TestAddTaskLaterAppendsToBacklog(t *testing.T) {
	s := newTestStore()
	s.AddTask("a", false, nil, nil)
	s.AddTask("b", false, nil, nil)

	st := s.Snapshot()
	if len(st.Backlog) != 2 || st.Backlog[0].Text != "a" || st.Backlog[1].Text != "b" {
		t.Fatalf("expected FIFO backlog [a b], got %v", collectIDs(st.Backlog))
	}
	if st.Backlog[0].Type != model.TaskLater {
		t.Fatalf("expected LATER type, got %q", st.Backlog[0].Type)
	}
	if st.TimerStart != nil {
		t.Fatal("backlog add must not start the timer")
	}
}

func TestAddTaskBlankTextIsNoop(t *testing.T) {
	s := newTestStore()
	s.AddTask("   \n\t", true, nil, nil)
	st := s.Snapshot()
	if len(st.Stack) != 0 || st.TimerStart != nil {
		t.Fatalf("expected no-op for blank text, got %+v", st)
	}
}

func TestCompleteTopSingleTask(t *testing.T) {
	s := newTestStore()
	s.AddTask("only", true, nil, nil)
	s.CompleteTop()

	st := s.Snapshot()
	if len(st.Stack) != 0 {
		t.Fatalf("expected empty stack, got %d", len(st.Stack))
	}
	if st.TimerStart != nil {
		t.Fatal("expected timer cleared on empty stack")
	}
	if len(st.History) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(st.History))
	}
	done := st.History[0]
	if done.Type != model.TaskDone || done.CompletedAt == nil {
		t.Fatalf("expected DONE with completedAt, got %+v", done)
	}
	if st.PendingJournalTaskID != done.ID {
		t.Fatalf("expected journal prompt for %s, got %q", done.ID, st.PendingJournalTaskID)
	}
	assertExclusiveOwnership(t, st)
}

func TestCompleteTopTwoTasksRefreshesTimer(t *testing.T) {
	s := newTestStore()
	s.AddTask("bottom", true, nil, nil)
	s.AddTask("top", true, nil, nil)
	before := *s.Snapshot().TimerStart

	s.CompleteTop()
	st := s.Snapshot()
	if len(st.Stack) != 1 || st.Stack[0].Text != "bottom" {
		t.Fatalf("expected [bottom] remaining, got %v", collectIDs(st.Stack))
	}
	if st.TimerStart == nil || !st.TimerStart.After(before) {
		t.Fatalf("expected refreshed timer, got %v (before %v)", st.TimerStart, before)
	}
	if len(st.History) != 1 || st.History[0].Text != "top" {
		t.Fatalf("expected top in history, got %v", collectIDs(st.History))
	}
	assertExclusiveOwnership(t, st)
}

func TestCompleteTopEmptyStackIsNoop(t *testing.T) {
	s := newTestStore()
	s.CompleteTop()
	st := s.Snapshot()
	if len(st.History) != 0 || st.PendingJournalTaskID != "" {
		t.Fatalf("expected no-op on empty stack, got %+v", st)
	}
}

func TestDeferTopPreservesFields(t *testing.T) {
	s := newTestStore()
	deadline := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	s.AddTask("deferred later", true, &deadline, []string{"cat-1"})
	id := s.Snapshot().Stack[0].ID

	s.DeferTop()
	st := s.Snapshot()
	if len(st.Stack) != 0 || st.TimerStart != nil {
		t.Fatal("expected empty stack and cleared timer")
	}
	if len(st.Backlog) != 1 {
		t.Fatalf("expected 1 backlog task, got %d", len(st.Backlog))
	}
	got := st.Backlog[0]
	if got.ID != id || got.Type != model.TaskLater {
		t.Fatalf("expected same id with LATER type, got %+v", got)
	}
	if got.Deadline == nil || !got.Deadline.Equal(deadline) {
		t.Fatalf("expected deadline preserved, got %v", got.Deadline)
	}
	if len(got.Categories) != 1 || got.Categories[0] != "cat-1" {
		t.Fatalf("expected categories preserved, got %v", got.Categories)
	}
	assertExclusiveOwnership(t, st)
}

func TestDeferTopAppendsToTail(t *testing.T) {
	s := newTestStore()
	s.AddTask("waiting", false, nil, nil)
	s.AddTask("anchor", true, nil, nil)
	s.DeferTop()

	st := s.Snapshot()
	if len(st.Backlog) != 2 || st.Backlog[1].Text != "anchor" {
		t.Fatalf("expected anchor at backlog tail, got %v", collectIDs(st.Backlog))
	}
}

func TestPromoteMovesToAnchor(t *testing.T) {
	s := newTestStore()
	s.AddTask("current", true, nil, nil)
	s.AddTask("queued", false, nil, nil)
	id := s.Snapshot().Backlog[0].ID

	s.Promote(id)
	st := s.Snapshot()
	if len(st.Backlog) != 0 {
		t.Fatalf("expected empty backlog, got %d", len(st.Backlog))
	}
	if len(st.Stack) != 2 || st.Stack[0].ID != id {
		t.Fatalf("expected promoted task as anchor, got %v", collectIDs(st.Stack))
	}
	if st.Stack[0].Type != model.TaskNow {
		t.Fatalf("expected NOW type, got %q", st.Stack[0].Type)
	}
	if st.TimerStart == nil {
		t.Fatal("expected timer started by promote")
	}
	assertExclusiveOwnership(t, st)
}

func TestPromoteUnknownIDIsNoop(t *testing.T) {
	s := newTestStore()
	s.AddTask("current", true, nil, nil)
	before := s.Snapshot()
	s.Promote("missing")
	after := s.Snapshot()
	if len(after.Stack) != len(before.Stack) || len(after.Backlog) != 0 {
		t.Fatal("expected no-op for unknown id")
	}
}

func TestPanicClearsStackOnly(t *testing.T) {
	s := newTestStore()
	s.AddTask("queued", false, nil, nil)
	s.AddTask("anchor", true, nil, nil)
	s.CompleteTop()
	s.AddTask("another", true, nil, nil)

	s.Panic()
	st := s.Snapshot()
	if len(st.Stack) != 0 || st.TimerStart != nil {
		t.Fatal("expected empty stack and nil timer after panic")
	}
	if len(st.Backlog) != 1 || len(st.History) != 1 {
		t.Fatalf("panic must not touch backlog/history, got %d/%d", len(st.Backlog), len(st.History))
	}
}

func TestReorderBacklog(t *testing.T) {
	s := newTestStore()
	for _, text := range []string{"A", "B", "C", "D"} {
		s.AddTask(text, false, nil, nil)
	}
	s.ReorderBacklog(0, 2)

	st := s.Snapshot()
	got := make([]string, 0, 4)
	for _, task := range st.Backlog {
		got = append(got, task.Text)
	}
	want := []string{"B", "C", "A", "D"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestReorderBacklogOutOfRangeIsNoop(t *testing.T) {
	s := newTestStore()
	s.AddTask("A", false, nil, nil)
	s.ReorderBacklog(0, 5)
	s.ReorderBacklog(-1, 0)
	st := s.Snapshot()
	if len(st.Backlog) != 1 || st.Backlog[0].Text != "A" {
		t.Fatalf("expected backlog unchanged, got %v", collectIDs(st.Backlog))
	}
}

func TestEditTaskStackAndBacklogOnly(t *testing.T) {
	s := newTestStore()
	s.AddTask("old anchor", true, nil, nil)
	s.AddTask("old backlog", false, nil, nil)
	s.CompleteTop()
	doneID := s.Snapshot().History[0].ID

	backlogID := s.Snapshot().Backlog[0].ID
	s.EditTask(backlogID, "new backlog")
	s.EditTask(doneID, "rewritten history")

	st := s.Snapshot()
	if st.Backlog[0].Text != "new backlog" {
		t.Fatalf("expected backlog edit applied, got %q", st.Backlog[0].Text)
	}
	if st.History[0].Text != "old anchor" {
		t.Fatalf("history must not be editable, got %q", st.History[0].Text)
	}
}

func TestDeleteTaskIdempotent(t *testing.T) {
	s := newTestStore()
	s.AddTask("gone", false, nil, nil)
	id := s.Snapshot().Backlog[0].ID

	s.DeleteTask(id)
	first := s.Snapshot()
	if len(first.Backlog) != 0 {
		t.Fatal("expected task removed")
	}

	s.DeleteTask(id)
	second := s.Snapshot()
	if len(second.Backlog) != 0 || len(second.Stack) != 0 {
		t.Fatal("second delete must be a clean no-op")
	}
}

func TestDeleteAnchorClearsTimer(t *testing.T) {
	s := newTestStore()
	s.AddTask("anchor", true, nil, nil)
	id := s.Snapshot().Stack[0].ID
	s.DeleteTask(id)
	st := s.Snapshot()
	if len(st.Stack) != 0 || st.TimerStart != nil {
		t.Fatal("expected stack empty and timer cleared")
	}
}

func TestLifecycleExclusiveOwnershipUnderSequence(t *testing.T) {
	s := newTestStore()
	s.AddTask("one", true, nil, nil)
	s.AddTask("two", false, nil, nil)
	s.AddTask("three", false, nil, nil)
	check := func() {
		t.Helper()
		assertExclusiveOwnership(t, s.Snapshot())
	}
	check()
	s.DeferTop()
	check()
	s.Promote(s.Snapshot().Backlog[0].ID)
	check()
	s.CompleteTop()
	check()
	s.Promote(s.Snapshot().Backlog[0].ID)
	check()
	s.CompleteTop()
	check()
	s.Promote(s.Snapshot().Backlog[0].ID)
	check()
	s.CompleteTop()
	check()
	st := s.Snapshot()
	if len(st.History) != 3 || len(st.Stack) != 0 || len(st.Backlog) != 0 {
		t.Fatalf("expected everything completed, got %d/%d/%d", len(st.Stack), len(st.Backlog), len(st.History))
	}
}

func TestSetTaskDeadlineAndCategories(t *testing.T) {
	s := newTestStore()
	s.AddTask("task", false, nil, nil)
	id := s.Snapshot().Backlog[0].ID

	deadline := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	s.SetTaskDeadline(id, &deadline)
	s.SetTaskCategories(id, []string{"cat-a", "cat-b"})

	st := s.Snapshot()
	got := st.Backlog[0]
	if got.Deadline == nil || !got.Deadline.Equal(deadline) {
		t.Fatalf("expected deadline set, got %v", got.Deadline)
	}
	if len(got.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %v", got.Categories)
	}

	s.SetTaskDeadline(id, nil)
	if s.Snapshot().Backlog[0].Deadline != nil {
		t.Fatal("expected deadline cleared")
	}
}

func TestOnChangeFiresPerMutation(t *testing.T) {
	s := newTestStore()
	var count int
	s.SetOnChange(func(State) { count++ })
	s.AddTask("a", true, nil, nil)
	s.CompleteTop()
	s.DismissJournal()
	if count != 3 {
		t.Fatalf("expected 3 change notifications, got %d", count)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := newTestStore()
	s.AddTask("task", true, nil, []string{"cat"})
	st := s.Snapshot()
	st.Stack[0].Text = "mutated"
	st.Stack[0].Categories[0] = "mutated"
	if got := s.Snapshot().Stack[0]; got.Text != "task" || got.Categories[0] != "cat" {
		t.Fatalf("snapshot mutation leaked into store: %+v", got)
	}
}
