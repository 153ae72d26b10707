package store

import "github.com/ironclad/anchor/internal/model"

// LogJournal attaches a reflection entry to a completed task. The pending
// flag clears unconditionally: even when the target task is missing the
// prompt must not come back.
func (s *Store) LogJournal(taskID string, entry model.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PendingJournalTaskID = ""
	if err := entry.Validate(); err != nil {
		s.commit()
		return
	}
	idx := findTask(s.state.History, taskID)
	if idx >= 0 {
		e := entry
		e.Mood = append([]string(nil), entry.Mood...)
		s.state.History[idx].Journal = &e
	}
	s.commit()
}

// DismissJournal skips the reflection prompt. There is no re-open path.
func (s *Store) DismissJournal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.PendingJournalTaskID == "" {
		return
	}
	s.state.PendingJournalTaskID = ""
	s.commit()
}

// SetCurrentEnergy records the user's self-reported energy, 1 through 5.
func (s *Store) SetCurrentEnergy(level int) {
	if level < 1 || level > 5 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentEnergy = level
	s.commit()
}
