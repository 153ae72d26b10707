package store

import (
	"strings"
	"time"

	"github.com/ironclad/anchor/internal/model"
)

// AddTask creates a task and places it on the stack head (isNow) or the
// backlog tail. Blank text is a silent no-op.
func (s *Store) AddTask(text string, isNow bool, deadline *time.Time, categoryIDs []string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	task := model.Task{
		ID:         s.newID(),
		Text:       trimmed,
		CreatedAt:  now,
		Categories: append([]string(nil), categoryIDs...),
	}
	if deadline != nil {
		d := *deadline
		task.Deadline = &d
	}

	s.effects.Haptic(s.state.Settings.HapticStrength)
	if isNow {
		task.Type = model.TaskNow
		s.state.Stack = append([]model.Task{task}, s.state.Stack...)
		s.state.TimerStart = &now
		s.fireAnchorEffects()
	} else {
		task.Type = model.TaskLater
		s.state.Backlog = append(s.state.Backlog, task)
	}
	if task.Deadline != nil {
		s.syncCalendarLocked(task.ID)
	}
	s.commit()
}

// CompleteTop pops the anchor into history. Terminal: a completed task
// never returns to the stack or backlog.
func (s *Store) CompleteTop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.Stack) == 0 {
		return
	}

	now := s.now()
	done := s.state.Stack[0]
	s.state.Stack = s.state.Stack[1:]
	done.Type = model.TaskDone
	done.CompletedAt = &now
	s.state.History = append([]model.Task{done}, s.state.History...)
	s.state.PendingJournalTaskID = done.ID

	if len(s.state.Stack) > 0 {
		s.state.TimerStart = &now
	} else {
		s.state.TimerStart = nil
	}

	s.effects.Haptic(s.state.Settings.HapticStrength)
	if s.state.Settings.NotifyOnComplete {
		s.effects.NotifyCompleted(done.Text)
	}
	s.fireAnchorEffects()
	s.commit()
}

// DeferTop moves the anchor to the backlog tail.
func (s *Store) DeferTop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.Stack) == 0 {
		return
	}

	deferred := s.state.Stack[0]
	s.state.Stack = s.state.Stack[1:]
	deferred.Type = model.TaskLater
	s.state.Backlog = append(s.state.Backlog, deferred)

	if len(s.state.Stack) > 0 {
		now := s.now()
		s.state.TimerStart = &now
	} else {
		s.state.TimerStart = nil
	}
	s.fireAnchorEffects()
	s.commit()
}

// Promote pulls a backlog task to the stack head, making it the anchor.
func (s *Store) Promote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := findTask(s.state.Backlog, id)
	if idx < 0 {
		return
	}

	task := s.state.Backlog[idx]
	s.state.Backlog = append(s.state.Backlog[:idx], s.state.Backlog[idx+1:]...)
	task.Type = model.TaskNow
	s.state.Stack = append([]model.Task{task}, s.state.Stack...)
	now := s.now()
	s.state.TimerStart = &now
	s.fireAnchorEffects()
	s.commit()
}

// Panic abandons the current focus: stack and timer only, backlog and
// history untouched.
func (s *Store) Panic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects.Haptic(model.HapticHeavy)
	s.state.Stack = nil
	s.state.TimerStart = nil
	s.fireAnchorEffects()
	s.commit()
}

// ReorderBacklog moves the element at from to position to. Out-of-range
// indices are a stale-UI artifact and ignored.
func (s *Store) ReorderBacklog(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.state.Backlog)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	moved := s.state.Backlog[from]
	rest := append(s.state.Backlog[:from], s.state.Backlog[from+1:]...)
	out := make([]model.Task, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	s.state.Backlog = out
	s.commit()
}

// EditTask updates the text of a stack or backlog task. History entries
// are not editable through this path.
func (s *Store) EditTask(id, newText string) {
	trimmed := strings.TrimSpace(newText)
	if trimmed == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := findTask(s.state.Stack, id); idx >= 0 {
		s.state.Stack[idx].Text = trimmed
		s.commit()
		return
	}
	if idx := findTask(s.state.Backlog, id); idx >= 0 {
		s.state.Backlog[idx].Text = trimmed
		s.commit()
	}
}

// DeleteTask removes a task from the stack and backlog. Idempotent.
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := false
	if idx := findTask(s.state.Stack, id); idx >= 0 {
		wasAnchor := idx == 0
		s.state.Stack = append(s.state.Stack[:idx], s.state.Stack[idx+1:]...)
		removed = true
		if len(s.state.Stack) == 0 {
			s.state.TimerStart = nil
		}
		if wasAnchor {
			s.fireAnchorEffects()
		}
	}
	if idx := findTask(s.state.Backlog, id); idx >= 0 {
		s.state.Backlog = append(s.state.Backlog[:idx], s.state.Backlog[idx+1:]...)
		removed = true
	}
	if removed {
		s.unlinkTaskFromNotesLocked(id)
		s.commit()
	}
}

// SetTaskDeadline updates the deadline on a stack or backlog task and
// mirrors the change to the calendar collaborator.
func (s *Store) SetTaskDeadline(id string, deadline *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := s.activeTaskLocked(id)
	if task == nil {
		return
	}
	if deadline == nil {
		task.Deadline = nil
	} else {
		d := *deadline
		task.Deadline = &d
	}
	s.syncCalendarLocked(id)
	s.commit()
}

// SetTaskCategories replaces the category set on a stack or backlog task.
func (s *Store) SetTaskCategories(id string, categoryIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := s.activeTaskLocked(id)
	if task == nil {
		return
	}
	task.Categories = append([]string(nil), categoryIDs...)
	s.commit()
}

// activeTaskLocked returns a pointer into stack or backlog, nil if absent.
func (s *Store) activeTaskLocked(id string) *model.Task {
	if idx := findTask(s.state.Stack, id); idx >= 0 {
		return &s.state.Stack[idx]
	}
	if idx := findTask(s.state.Backlog, id); idx >= 0 {
		return &s.state.Backlog[idx]
	}
	return nil
}

// fireAnchorEffects pushes the current anchor (or its absence) out to the
// timer notification, widget and DND collaborators.
func (s *Store) fireAnchorEffects() {
	if len(s.state.Stack) > 0 && s.state.TimerStart != nil {
		top := s.state.Stack[0]
		minutes := s.state.Settings.TimerMinutes
		s.effects.StartTimerNotification(top.Text, minutes)
		s.effects.UpdateWidget(top.Text, time.Duration(minutes)*time.Minute)
		s.effects.EnableDND()
		return
	}
	s.effects.StopTimerNotification()
	s.effects.ClearWidget()
	s.effects.DisableDND()
}

// syncCalendarLocked pushes a task's deadline to the calendar collaborator
// and records the returned event id. Sync failures are dropped; the state
// change already happened.
func (s *Store) syncCalendarLocked(id string) {
	if !s.state.Settings.CalendarSync {
		return
	}
	task := s.activeTaskLocked(id)
	if task == nil {
		return
	}
	eventID, err := s.effects.SyncTaskToCalendar(task.ID, task.Text, task.Deadline, task.CalendarEventID)
	if err != nil {
		return
	}
	task.CalendarEventID = eventID
}

