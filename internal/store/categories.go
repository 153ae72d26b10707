package store

import (
	"fmt"
	"strings"

	"github.com/ironclad/anchor/internal/model"
)

// CategoryInUseError is the typed refusal DeleteCategory returns while
// tasks or notes still reference the category.
type CategoryInUseError struct {
	ID    string
	Tasks int
	Notes int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("store: category %s in use by %d tasks and %d notes", e.ID, e.Tasks, e.Notes)
}

// AddCategory registers a label. Blank names and malformed colors are
// rejected silently; the UI presets only produce valid values.
func (s *Store) AddCategory(name, color, icon string) {
	cat := model.Category{
		Name:  strings.TrimSpace(name),
		Color: color,
		Icon:  icon,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cat.ID = s.newID()
	if err := cat.Validate(); err != nil {
		return
	}
	s.state.Categories = append(s.state.Categories, cat)
	s.commit()
}

// CategoryPatch carries the fields UpdateCategory merges. Nil means
// untouched.
type CategoryPatch struct {
	Name  *string
	Color *string
	Icon  *string
}

func (s *Store) UpdateCategory(id string, patch CategoryPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findCategoryLocked(id)
	if idx < 0 {
		return
	}
	cat := s.state.Categories[idx]
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		cat.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Color != nil {
		cat.Color = *patch.Color
	}
	if patch.Icon != nil {
		cat.Icon = *patch.Icon
	}
	if err := cat.Validate(); err != nil {
		return
	}
	s.state.Categories[idx] = cat
	s.commit()
}

// DeleteCategory removes a label, refusing with a CategoryInUseError while
// any task or note still references it. The guard lives here, not at call
// sites. Unknown ids are an idempotent nil.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findCategoryLocked(id)
	if idx < 0 {
		return nil
	}
	tasks, notes := s.categoryUsageLocked(id)
	if tasks+notes > 0 {
		return &CategoryInUseError{ID: id, Tasks: tasks, Notes: notes}
	}
	s.state.Categories = append(s.state.Categories[:idx], s.state.Categories[idx+1:]...)
	s.commit()
	return nil
}

// CategoryUsage counts references across all task collections and notes.
func (s *Store) CategoryUsage(id string) (tasks, notes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryUsageLocked(id)
}

func (s *Store) categoryUsageLocked(id string) (tasks, notes int) {
	for _, coll := range [][]model.Task{s.state.Stack, s.state.Backlog, s.state.History} {
		for _, task := range coll {
			if task.HasCategory(id) {
				tasks++
			}
		}
	}
	for _, note := range s.state.BrainNotes {
		if note.HasCategory(id) {
			notes++
		}
	}
	return tasks, notes
}

func (s *Store) findCategoryLocked(id string) int {
	for i := range s.state.Categories {
		if s.state.Categories[i].ID == id {
			return i
		}
	}
	return -1
}
