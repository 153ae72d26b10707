package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ironclad/anchor/internal/store"
	"github.com/ironclad/anchor/internal/views"
)

func (m Model) handleBrainKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j":
		m.Brain.Cursor = clampCursor(m.Brain.Cursor+1, len(m.State.BrainNotes))
	case "k":
		m.Brain.Cursor = clampCursor(m.Brain.Cursor-1, len(m.State.BrainNotes))
	case "n":
		m.openNoteEditor("")
	case "e":
		if len(m.State.BrainNotes) > 0 {
			m.openNoteEditor(m.State.BrainNotes[m.Brain.Cursor].ID)
		}
	case "x":
		if len(m.State.BrainNotes) > 0 {
			note := m.State.BrainNotes[m.Brain.Cursor]
			m.Store.DeleteNote(note.ID)
			m.refreshState()
			m.Status = StatusBar{Text: fmt.Sprintf("deleted note: %s", note.Title)}
		}
	case "L":
		m.linkSelectedNoteToAnchor()
	}
	return m
}

func (m *Model) openNoteEditor(noteID string) {
	m.Capture = CaptureNote
	m.Brain.EditorActive = true
	m.Brain.EditingID = noteID
	m.noteTitle.SetValue("")
	m.noteBody.SetValue("")
	if noteID != "" {
		for _, note := range m.State.BrainNotes {
			if note.ID == noteID {
				m.noteTitle.SetValue(note.Title)
				m.noteBody.SetValue(note.Content)
				break
			}
		}
	}
	m.noteTitle.Focus()
}

func (m Model) commitNoteEditor() Model {
	title := strings.TrimSpace(m.noteTitle.Value())
	content := m.noteBody.Value()
	editing := m.Brain.EditingID

	m.Brain.EditorActive = false
	m.Brain.EditingID = ""
	m.noteTitle.Blur()
	m.noteBody.Blur()

	if title == "" {
		m.Status = StatusBar{Text: "note needs a title", IsError: true}
		return m
	}
	if editing == "" {
		m.Store.AddNote(title, content, nil)
		m.Status = StatusBar{Text: fmt.Sprintf("note added: %s", title)}
	} else {
		m.Store.UpdateNote(editing, store.NotePatch{Title: &title, Content: &content})
		m.Status = StatusBar{Text: fmt.Sprintf("note updated: %s", title)}
	}
	m.refreshState()
	return m
}

func (m *Model) linkSelectedNoteToAnchor() {
	if len(m.State.BrainNotes) == 0 {
		return
	}
	if len(m.State.Stack) == 0 {
		m.Status = StatusBar{Text: "no anchor to link to", IsError: true}
		return
	}
	note := m.State.BrainNotes[m.Brain.Cursor]
	m.Store.LinkNoteToTask(note.ID, m.State.Stack[0].ID)
	m.refreshState()
	m.Status = StatusBar{Text: fmt.Sprintf("linked %q to the anchor", note.Title)}
}

func (m Model) renderBrainView() string {
	data := views.BrainPanelData{EditorActive: m.Brain.EditorActive}
	for i, note := range m.State.BrainNotes {
		item := views.NoteItemData{
			ID:         note.ID,
			Title:      note.Title,
			Updated:    note.UpdatedAt.Local().Format("Jan 2 15:04"),
			Categories: m.categoryNames(note.Categories),
		}
		data.Notes = append(data.Notes, item)
		if i == m.Brain.Cursor {
			data.SelectedID = note.ID
			if !m.Brain.EditorActive {
				data.PreviewView = views.RenderMarkdown(note.Content)
			}
		}
	}
	if m.Brain.EditorActive {
		data.EditorView = m.noteTitle.View() + "\n" + m.noteBody.View()
	}
	return views.RenderBrainPanel(data)
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j":
		m.CategoryCur = clampCursor(m.CategoryCur+1, len(m.State.Categories))
	case "k":
		m.CategoryCur = clampCursor(m.CategoryCur-1, len(m.State.Categories))
	case "n":
		m.Capture = CaptureCategory
		m.taskInput.SetValue("")
		m.taskInput.Focus()
		m.Status = StatusBar{Text: "new category name"}
	case "x":
		if len(m.State.Categories) > 0 {
			cat := m.State.Categories[m.CategoryCur]
			if err := m.Store.DeleteCategory(cat.ID); err != nil {
				var inUse *store.CategoryInUseError
				if errors.As(err, &inUse) {
					m.Status = StatusBar{
						Text:    fmt.Sprintf("%s is in use by %d task(s) and %d note(s)", cat.Name, inUse.Tasks, inUse.Notes),
						IsError: true,
					}
					return m
				}
				m.Status = StatusBar{Text: err.Error(), IsError: true}
				return m
			}
			m.refreshState()
			m.Status = StatusBar{Text: fmt.Sprintf("deleted category: %s", cat.Name)}
		}
	}
	return m
}

// categoryPalette cycles fixed colors for quick category creation; full
// color and icon editing goes through the store API.
var categoryPalette = []string{"#e07a5f", "#3d405b", "#81b29a", "#f2cc8f", "#6d6875"}

func (m Model) commitCategoryInput() Model {
	name := strings.TrimSpace(m.taskInput.Value())
	m.taskInput.Blur()
	if name == "" {
		m.Status = StatusBar{Text: "empty category ignored"}
		return m
	}
	color := categoryPalette[len(m.State.Categories)%len(categoryPalette)]
	m.Store.AddCategory(name, color, "tag")
	m.refreshState()
	m.Status = StatusBar{Text: fmt.Sprintf("category added: %s", name)}
	return m
}

func (m Model) renderCategoryView() string {
	data := views.CategoryPanelData{}
	for i, cat := range m.State.Categories {
		tasks, notes := m.Store.CategoryUsage(cat.ID)
		item := views.CategoryItemData{
			ID:    cat.ID,
			Name:  cat.Name,
			Color: cat.Color,
			Icon:  cat.Icon,
			Tasks: tasks,
			Notes: notes,
		}
		data.Items = append(data.Items, item)
		if i == m.CategoryCur {
			data.SelectedID = cat.ID
		}
	}
	return views.RenderCategoryPanel(data)
}
