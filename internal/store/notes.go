package store

import (
	"strings"

	"github.com/ironclad/anchor/internal/model"
)

// NotePatch carries the fields UpdateNote merges. Nil means untouched.
type NotePatch struct {
	Title      *string
	Content    *string
	Categories *[]string
}

// AddNote creates a brain note. Blank titles are a silent no-op.
func (s *Store) AddNote(title, content string, categoryIDs []string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	note := model.BrainNote{
		ID:         s.newID(),
		Title:      trimmed,
		Content:    content,
		Categories: append([]string(nil), categoryIDs...),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.state.BrainNotes = append(s.state.BrainNotes, note)
	s.commit()
}

// UpdateNote merges the patch into an existing note and refreshes
// UpdatedAt. Unknown ids are ignored.
func (s *Store) UpdateNote(id string, patch NotePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := findNote(s.state.BrainNotes, id)
	if idx < 0 {
		return
	}
	note := &s.state.BrainNotes[idx]
	if patch.Title != nil && strings.TrimSpace(*patch.Title) != "" {
		note.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Categories != nil {
		note.Categories = append([]string(nil), (*patch.Categories)...)
	}
	note.UpdatedAt = s.now()
	s.commit()
}

// DeleteNote removes a note and clears any task links pointing at it.
// Idempotent.
func (s *Store) DeleteNote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := findNote(s.state.BrainNotes, id)
	if idx < 0 {
		return
	}
	s.state.BrainNotes = append(s.state.BrainNotes[:idx], s.state.BrainNotes[idx+1:]...)
	for _, tasks := range [][]model.Task{s.state.Stack, s.state.Backlog, s.state.History} {
		for i := range tasks {
			tasks[i].LinkedNotes = removeString(tasks[i].LinkedNotes, id)
		}
	}
	s.commit()
}

// LinkNoteToTask cross-links a note and a task in either direction.
// No-op unless both exist; the task may live in any collection.
func (s *Store) LinkNoteToTask(noteID, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	noteIdx := findNote(s.state.BrainNotes, noteID)
	task := s.anyTaskLocked(taskID)
	if noteIdx < 0 || task == nil {
		return
	}
	note := &s.state.BrainNotes[noteIdx]
	if !containsString(note.LinkedTasks, taskID) {
		note.LinkedTasks = append(note.LinkedTasks, taskID)
	}
	if !containsString(task.LinkedNotes, noteID) {
		task.LinkedNotes = append(task.LinkedNotes, noteID)
	}
	s.commit()
}

// UnlinkNoteFromTask drops the cross-link from both sides. Idempotent.
func (s *Store) UnlinkNoteFromTask(noteID, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if noteIdx := findNote(s.state.BrainNotes, noteID); noteIdx >= 0 {
		note := &s.state.BrainNotes[noteIdx]
		note.LinkedTasks = removeString(note.LinkedTasks, taskID)
	}
	if task := s.anyTaskLocked(taskID); task != nil {
		task.LinkedNotes = removeString(task.LinkedNotes, noteID)
	}
	s.commit()
}

func (s *Store) anyTaskLocked(id string) *model.Task {
	if task := s.activeTaskLocked(id); task != nil {
		return task
	}
	if idx := findTask(s.state.History, id); idx >= 0 {
		return &s.state.History[idx]
	}
	return nil
}

func (s *Store) unlinkTaskFromNotesLocked(taskID string) {
	for i := range s.state.BrainNotes {
		s.state.BrainNotes[i].LinkedTasks = removeString(s.state.BrainNotes[i].LinkedTasks, taskID)
	}
}
