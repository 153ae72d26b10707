package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ironclad/anchor/internal/views"
)

func (m Model) handleBacklogKey(msg tea.KeyMsg) Model {
	if m.Backlog.Reordering {
		switch msg.String() {
		case "esc", "m":
			m.Backlog.Reordering = false
			m.Status = StatusBar{Text: "reorder finished"}
		case "J":
			m.moveBacklogItem(1)
		case "K":
			m.moveBacklogItem(-1)
		}
		return m
	}

	switch msg.String() {
	case "j":
		m.Backlog.Cursor = clampCursor(m.Backlog.Cursor+1, len(m.State.Backlog))
	case "k":
		m.Backlog.Cursor = clampCursor(m.Backlog.Cursor-1, len(m.State.Backlog))
	case "m":
		if len(m.State.Backlog) > 1 {
			m.Backlog.Reordering = true
			m.Status = StatusBar{Text: "reordering: J/K to move, esc to finish"}
		}
	case "enter":
		if task, ok := m.selectedBacklogTask(); ok {
			m.Store.Promote(task.ID)
			m.refreshState()
			m.Status = StatusBar{Text: fmt.Sprintf("promoted: %s", task.Text)}
		}
	case "x":
		if task, ok := m.selectedBacklogTask(); ok {
			m.Store.DeleteTask(task.ID)
			m.refreshState()
			m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Text)}
		}
	}
	return m
}

func (m *Model) moveBacklogItem(delta int) {
	from := m.Backlog.Cursor
	to := from + delta
	if to < 0 || to >= len(m.State.Backlog) {
		return
	}
	m.Store.ReorderBacklog(from, to)
	m.refreshState()
	m.Backlog.Cursor = to
}

func (m Model) selectedBacklogTask() (views.StackItemData, bool) {
	if len(m.State.Backlog) == 0 {
		return views.StackItemData{}, false
	}
	task := m.State.Backlog[m.Backlog.Cursor]
	return views.StackItemData{ID: task.ID, Text: task.Text}, true
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j":
		m.HistoryCur = clampCursor(m.HistoryCur+1, len(m.State.History))
	case "k":
		m.HistoryCur = clampCursor(m.HistoryCur-1, len(m.State.History))
	}
	return m
}

func (m Model) renderBacklogView() string {
	data := views.BacklogPanelData{Reordering: m.Backlog.Reordering}
	for i, task := range m.State.Backlog {
		item := views.StackItemData{
			ID:         task.ID,
			Text:       task.Text,
			Deadline:   formatDeadline(task.Deadline),
			Categories: m.categoryNames(task.Categories),
		}
		data.Items = append(data.Items, item)
		if i == m.Backlog.Cursor {
			data.SelectedID = task.ID
		}
	}
	return views.RenderBacklogPanel(data)
}

func (m Model) renderHistoryView() string {
	data := views.HistoryPanelData{}
	for i, task := range m.State.History {
		item := views.HistoryItemData{
			ID:        task.ID,
			Text:      task.Text,
			Completed: formatCompleted(task.CompletedAt),
		}
		if task.Journal != nil {
			item.Energy = task.Journal.Energy
			item.Focus = task.Journal.Focus
			item.Note = task.Journal.Note
		}
		data.Items = append(data.Items, item)
		if i == m.HistoryCur {
			data.SelectedID = task.ID
		}
	}
	return views.RenderHistoryPanel(data)
}
