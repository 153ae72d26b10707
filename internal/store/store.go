// Package store holds the application state and every mutation that is
// allowed to touch it. The stack/backlog/history split is the load-bearing
// invariant: a task id lives in exactly one of the three at any time, and
// its Type field always names the collection that owns it.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ironclad/anchor/internal/model"
)

// State is the full persisted snapshot. Stack order is focus order with
// the anchor at index 0; History is most-recently-completed first.
type State struct {
	Stack                []model.Task      `json:"stack"`
	Backlog              []model.Task      `json:"backlog"`
	History              []model.Task      `json:"history"`
	BrainNotes           []model.BrainNote `json:"brainNotes"`
	Categories           []model.Category  `json:"categories"`
	Settings             model.Settings    `json:"settings"`
	TimerStart           *time.Time        `json:"timerStart,omitempty"`
	PendingJournalTaskID string            `json:"pendingJournalTaskId,omitempty"`
	CurrentEnergy        int               `json:"currentEnergy"`
}

// Effects is the collaborator surface the store fires after mutations.
// Implementations are fire-and-forget: failures there never roll back an
// applied state change.
type Effects interface {
	Haptic(strength model.HapticStrength)
	NotifyCompleted(text string)
	StartTimerNotification(text string, minutes int)
	StopTimerNotification()
	UpdateWidget(text string, remaining time.Duration)
	ClearWidget()
	EnableDND()
	DisableDND()
	SyncTaskToCalendar(id, text string, deadline *time.Time, existingEventID string) (string, error)
}

type NoopEffects struct{}

func (NoopEffects) Haptic(model.HapticStrength)                    {}
func (NoopEffects) NotifyCompleted(string)                         {}
func (NoopEffects) StartTimerNotification(string, int)             {}
func (NoopEffects) StopTimerNotification()                         {}
func (NoopEffects) UpdateWidget(string, time.Duration)             {}
func (NoopEffects) ClearWidget()                                   {}
func (NoopEffects) EnableDND()                                     {}
func (NoopEffects) DisableDND()                                    {}
func (NoopEffects) SyncTaskToCalendar(_, _ string, _ *time.Time, existing string) (string, error) {
	return existing, nil
}

// Store is the single-writer state container. All mutations take the lock,
// apply synchronously, then notify the change hook with a snapshot.
type Store struct {
	mu       sync.Mutex
	state    State
	effects  Effects
	onChange func(State)
	now      func() time.Time
	newID    func() string
}

func New(effects Effects) *Store {
	return NewWithState(State{}, effects)
}

func NewWithState(state State, effects Effects) *Store {
	if effects == nil {
		effects = NoopEffects{}
	}
	s := &Store{
		state:   normalize(state),
		effects: effects,
		now:     func() time.Time { return time.Now() },
		newID:   func() string { return uuid.New().String() },
	}
	return s
}

// SetOnChange installs a hook invoked with a snapshot after every mutation.
// Used by the persistence saver; best-effort, runs on the mutating call.
func (s *Store) SetOnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// SetClock overrides the time source. Test hook.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// commit is called with the lock held after a successful mutation.
func (s *Store) commit() {
	if s.onChange != nil {
		s.onChange(cloneState(s.state))
	}
}

// normalize repairs a loaded snapshot: settings defaults, type fields made
// consistent with the owning collection, dangling journal pointer cleared.
func normalize(st State) State {
	if err := st.Settings.Validate(); err != nil {
		st.Settings = model.DefaultSettings()
	}
	if st.CurrentEnergy < 1 || st.CurrentEnergy > 5 {
		st.CurrentEnergy = 3
	}
	for i := range st.Stack {
		st.Stack[i].Type = model.TaskNow
	}
	for i := range st.Backlog {
		st.Backlog[i].Type = model.TaskLater
	}
	for i := range st.History {
		st.History[i].Type = model.TaskDone
		if st.History[i].CompletedAt == nil {
			created := st.History[i].CreatedAt
			st.History[i].CompletedAt = &created
		}
	}
	if st.PendingJournalTaskID != "" && findTask(st.History, st.PendingJournalTaskID) < 0 {
		st.PendingJournalTaskID = ""
	}
	if len(st.Stack) == 0 {
		st.TimerStart = nil
	}
	return st
}

func cloneState(st State) State {
	out := st
	out.Stack = cloneTasks(st.Stack)
	out.Backlog = cloneTasks(st.Backlog)
	out.History = cloneTasks(st.History)
	out.BrainNotes = cloneNotes(st.BrainNotes)
	out.Categories = append([]model.Category(nil), st.Categories...)
	if st.TimerStart != nil {
		ts := *st.TimerStart
		out.TimerStart = &ts
	}
	if st.Settings.DailyReminderHour != nil {
		hour := *st.Settings.DailyReminderHour
		out.Settings.DailyReminderHour = &hour
	}
	return out
}

func cloneTasks(tasks []model.Task) []model.Task {
	if tasks == nil {
		return nil
	}
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = cloneTask(t)
	}
	return out
}

func cloneTask(t model.Task) model.Task {
	out := t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	if t.Deadline != nil {
		d := *t.Deadline
		out.Deadline = &d
	}
	if t.Journal != nil {
		j := *t.Journal
		j.Mood = append([]string(nil), t.Journal.Mood...)
		out.Journal = &j
	}
	out.Categories = append([]string(nil), t.Categories...)
	out.LinkedNotes = append([]string(nil), t.LinkedNotes...)
	return out
}

func cloneNotes(notes []model.BrainNote) []model.BrainNote {
	if notes == nil {
		return nil
	}
	out := make([]model.BrainNote, len(notes))
	for i, n := range notes {
		out[i] = n
		out[i].Categories = append([]string(nil), n.Categories...)
		out[i].LinkedTasks = append([]string(nil), n.LinkedTasks...)
	}
	return out
}

func findTask(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func findNote(notes []model.BrainNote, id string) int {
	for i := range notes {
		if notes[i].ID == id {
			return i
		}
	}
	return -1
}

func removeString(items []string, target string) []string {
	out := items[:0]
	for _, item := range items {
		if item != target {
			out = append(out, item)
		}
	}
	return out
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
