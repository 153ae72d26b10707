package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidType   = errors.New("model: invalid task type")
	ErrInvalidEnergy = errors.New("model: invalid energy level")
	ErrInvalidFocus  = errors.New("model: invalid focus level")
)

// TaskType names the collection that currently owns a task.
type TaskType string

const (
	TaskNow   TaskType = "NOW"
	TaskLater TaskType = "LATER"
	TaskDone  TaskType = "DONE"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskNow, TaskLater, TaskDone:
		return true
	default:
		return false
	}
}

type Task struct {
	ID              string        `json:"id"`
	Text            string        `json:"text"`
	Type            TaskType      `json:"type"`
	CreatedAt       time.Time     `json:"createdAt"`
	CompletedAt     *time.Time    `json:"completedAt,omitempty"`
	Journal         *JournalEntry `json:"journal,omitempty"`
	Deadline        *time.Time    `json:"deadline,omitempty"`
	Categories      []string      `json:"categories,omitempty"`
	LinkedNotes     []string      `json:"linkedNotes,omitempty"`
	CalendarEventID string        `json:"calendarEventId,omitempty"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task createdAt is required")
	}
	if t.Type == TaskDone && t.CompletedAt == nil {
		return errors.New("model: completedAt is required when task type is DONE")
	}
	if t.Type != TaskDone && t.CompletedAt != nil {
		return errors.New("model: completedAt must be nil when task type is not DONE")
	}
	if t.Journal != nil {
		if t.Type != TaskDone {
			return errors.New("model: journal is only allowed on completed tasks")
		}
		if err := t.Journal.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (t Task) HasCategory(id string) bool {
	for _, c := range t.Categories {
		if c == id {
			return true
		}
	}
	return false
}

// JournalEntry is a post-completion reflection, attached at most once per
// completed task. Re-logging overwrites the previous entry.
type JournalEntry struct {
	Energy int      `json:"energy"`
	Focus  int      `json:"focus"`
	Note   string   `json:"note"`
	Mood   []string `json:"mood,omitempty"`
}

func (j JournalEntry) Validate() error {
	if j.Energy < 1 || j.Energy > 5 {
		return fmt.Errorf("%w: %d", ErrInvalidEnergy, j.Energy)
	}
	if j.Focus < 1 || j.Focus > 5 {
		return fmt.Errorf("%w: %d", ErrInvalidFocus, j.Focus)
	}
	return nil
}
