package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Text:      "Write the quarterly review",
		Type:      TaskNow,
		CreatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateDoneRequiresCompletedAt(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Text:      "Done task",
		Type:      TaskDone,
		CreatedAt: now,
	}
	err := task.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "model: completedAt is required when task type is DONE" {
		t.Fatalf("unexpected error: %v", err)
	}

	done := now.Add(time.Hour)
	task.CompletedAt = &done
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid done task, got: %v", err)
	}
}

func TestTaskValidateCompletedAtOnlyWhenDone(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	done := now.Add(time.Hour)
	task := Task{
		ID:          "task-1",
		Text:        "Still active",
		Type:        TaskLater,
		CreatedAt:   now,
		CompletedAt: &done,
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for completedAt on non-done task")
	}
}

func TestTaskValidateInvalidType(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Text:      "Bad type",
		Type:      TaskType("SOMEDAY"),
		CreatedAt: now,
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got: %v", err)
	}
}

func TestTaskValidateJournalOnlyOnDone(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Text:      "Active with journal",
		Type:      TaskNow,
		CreatedAt: now,
		Journal:   &JournalEntry{Energy: 3, Focus: 3},
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for journal on active task")
	}
}

func TestJournalEntryValidateRanges(t *testing.T) {
	cases := []struct {
		name    string
		entry   JournalEntry
		wantErr error
	}{
		{name: "valid", entry: JournalEntry{Energy: 1, Focus: 5, Note: "ok"}},
		{name: "energy too low", entry: JournalEntry{Energy: 0, Focus: 3}, wantErr: ErrInvalidEnergy},
		{name: "energy too high", entry: JournalEntry{Energy: 6, Focus: 3}, wantErr: ErrInvalidEnergy},
		{name: "focus too low", entry: JournalEntry{Energy: 3, Focus: 0}, wantErr: ErrInvalidFocus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.entry.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected valid entry, got: %v", err)
				}
				return
			}
			if err == nil || !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestTaskHasCategory(t *testing.T) {
	task := Task{Categories: []string{"cat-1", "cat-2"}}
	if !task.HasCategory("cat-2") {
		t.Fatal("expected task to have cat-2")
	}
	if task.HasCategory("cat-3") {
		t.Fatal("did not expect task to have cat-3")
	}
}
