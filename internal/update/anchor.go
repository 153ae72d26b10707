package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ironclad/anchor/internal/model"
	"github.com/ironclad/anchor/internal/scheduler"
	"github.com/ironclad/anchor/internal/views"
)

func (m Model) handleAnchorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		m.Capture = CaptureNow
		m.taskInput.SetValue("")
		m.taskInput.Focus()
		m.Status = StatusBar{Text: "adding to stack"}
		return m, nil
	case "l":
		m.Capture = CaptureLater
		m.taskInput.SetValue("")
		m.taskInput.Focus()
		m.Status = StatusBar{Text: "adding to backlog"}
		return m, nil
	case "enter":
		return m.completeAnchor()
	case "d":
		m.Store.DeferTop()
		m.refreshState()
		m.Status = StatusBar{Text: "anchor deferred to backlog"}
		return m, m.rearmFocusTriggers()
	case "P":
		m.Store.Panic()
		m.refreshState()
		m.cancelFocusTriggers()
		m.Status = StatusBar{Text: "stack cleared"}
		return m, nil
	}
	return m, nil
}

func (m Model) completeAnchor() (Model, tea.Cmd) {
	if len(m.State.Stack) == 0 {
		m.Status = StatusBar{Text: "stack is empty", IsError: true}
		return m, nil
	}
	done := m.State.Stack[0]
	m.Store.CompleteTop()
	m.refreshState()
	m.openJournalPrompt(done.ID, done.Text)
	m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", done.Text)}
	return m, m.rearmFocusTriggers()
}

// handleCaptureKey routes typed text into whichever inline input is open.
func (m Model) handleCaptureKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		target := m.Capture
		m.Capture = CaptureNone
		m.taskInput.Blur()
		m.noteTitle.Blur()
		m.noteBody.Blur()
		if target == CaptureNote {
			m.Brain.EditorActive = false
		}
		m.Status = StatusBar{Text: "input cancelled"}
		return m, nil
	case "enter":
		return m.commitCapture()
	}

	var cmd tea.Cmd
	switch m.Capture {
	case CaptureNow, CaptureLater, CaptureCategory:
		m.taskInput, cmd = m.taskInput.Update(msg)
	case CaptureNote:
		if m.noteTitle.Focused() {
			if msg.String() == "tab" {
				m.noteTitle.Blur()
				m.noteBody.Focus()
				return m, nil
			}
			m.noteTitle, cmd = m.noteTitle.Update(msg)
		} else {
			m.noteBody, cmd = m.noteBody.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) commitCapture() (Model, tea.Cmd) {
	target := m.Capture
	m.Capture = CaptureNone

	switch target {
	case CaptureNow, CaptureLater:
		text := strings.TrimSpace(m.taskInput.Value())
		m.taskInput.Blur()
		if text == "" {
			m.Status = StatusBar{Text: "empty task ignored"}
			return m, nil
		}
		m.Store.AddTask(text, target == CaptureNow, nil, nil)
		m.refreshState()
		if target == CaptureNow {
			m.Status = StatusBar{Text: fmt.Sprintf("new anchor: %s", text)}
			return m, tea.Batch(m.rearmFocusTriggers(), focusTickCmd())
		}
		m.Status = StatusBar{Text: fmt.Sprintf("queued: %s", text)}
		return m, nil
	case CaptureNote:
		return m.commitNoteEditor(), nil
	case CaptureCategory:
		return m.commitCategoryInput(), nil
	}
	return m, nil
}

func (m Model) handleJournalKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Store.DismissJournal()
		m.refreshState()
		m.closeJournalPrompt()
		m.Status = StatusBar{Text: "journal skipped"}
		return m
	case "enter":
		return m.commitJournal()
	case "tab":
		switch m.Journal.Field {
		case JournalFieldEnergy:
			m.Journal.Field = JournalFieldFocus
		case JournalFieldFocus:
			m.Journal.Field = JournalFieldNote
			m.journalNote.Focus()
		default:
			m.Journal.Field = JournalFieldEnergy
			m.journalNote.Blur()
		}
		return m
	}

	if m.Journal.Field == JournalFieldNote {
		var cmd tea.Cmd
		m.journalNote, cmd = m.journalNote.Update(msg)
		_ = cmd
		return m
	}

	switch msg.String() {
	case "h":
		m.adjustJournalLevel(-1)
	case "l":
		m.adjustJournalLevel(1)
	}
	return m
}

func (m *Model) adjustJournalLevel(delta int) {
	if m.Journal.Field == JournalFieldEnergy {
		m.Journal.Energy = clampLevel(m.Journal.Energy + delta)
		return
	}
	m.Journal.Focus = clampLevel(m.Journal.Focus + delta)
}

func (m Model) commitJournal() Model {
	m.Store.LogJournal(m.Journal.TaskID, model.JournalEntry{
		Energy: m.Journal.Energy,
		Focus:  m.Journal.Focus,
		Note:   strings.TrimSpace(m.journalNote.Value()),
	})
	m.refreshState()
	m.closeJournalPrompt()
	m.Status = StatusBar{Text: "journal saved"}
	return m
}

func (m *Model) openJournalPrompt(taskID, taskText string) {
	m.Journal = JournalPromptState{
		Active:   true,
		TaskID:   taskID,
		TaskText: taskText,
		Energy:   3,
		Focus:    3,
		Field:    JournalFieldEnergy,
	}
	m.journalNote.SetValue("")
}

func (m *Model) closeJournalPrompt() {
	m.Journal = JournalPromptState{}
	m.journalNote.Blur()
}

func (m Model) onFocusTick() (tea.Model, tea.Cmd) {
	if m.State.TimerStart == nil {
		return m, nil
	}
	m.TimerRemaining = m.timerRemainingAt(time.Now())
	if m.TimerRemaining <= 0 {
		m.Status = StatusBar{Text: "focus block elapsed"}
		return m, nil
	}
	return m, focusTickCmd()
}

func (m Model) applyReminder(ev scheduler.Event) Model {
	switch ev.Kind {
	case scheduler.KindFocusElapsed:
		m.Status = StatusBar{Text: "focus timer elapsed, wrap up or defer"}
	case scheduler.KindDeadline:
		m.Status = StatusBar{Text: "a task deadline just passed", IsError: true}
	case scheduler.KindDailyReminder:
		m.Status = StatusBar{Text: "daily check-in: pick today's anchor"}
	}
	return m
}

// rearmFocusTriggers replaces the pending focus-elapsed trigger to match
// the current anchor, or clears it when the stack is empty.
func (m Model) rearmFocusTriggers() tea.Cmd {
	if m.Scheduler == nil {
		return nil
	}
	m.Scheduler.CancelKind(scheduler.KindFocusElapsed)
	if m.State.TimerStart == nil || len(m.State.Stack) == 0 {
		return nil
	}
	trigger := m.State.TimerStart.Add(time.Duration(m.State.Settings.TimerMinutes) * time.Minute)
	_ = m.Scheduler.Schedule(scheduler.Event{
		ID:        "focus-" + m.State.Stack[0].ID,
		TaskID:    m.State.Stack[0].ID,
		Kind:      scheduler.KindFocusElapsed,
		TriggerAt: trigger,
	})
	return nil
}

func (m Model) cancelFocusTriggers() {
	if m.Scheduler == nil {
		return
	}
	m.Scheduler.CancelKind(scheduler.KindFocusElapsed)
}

func (m Model) renderAnchorView() string {
	data := views.AnchorPanelData{
		CurrentEnergy: m.State.CurrentEnergy,
		InputActive:   m.Capture == CaptureNow || m.Capture == CaptureLater,
		InputView:     m.taskInput.View(),
	}
	if len(m.State.Stack) > 0 {
		anchor := m.State.Stack[0]
		data.Anchor = &views.StackItemData{
			ID:         anchor.ID,
			Text:       anchor.Text,
			Deadline:   formatDeadline(anchor.Deadline),
			Categories: m.categoryNames(anchor.Categories),
		}
		for _, task := range m.State.Stack[1:] {
			data.Rest = append(data.Rest, views.StackItemData{ID: task.ID, Text: task.Text})
		}
	}
	if m.State.TimerStart != nil {
		total := time.Duration(m.State.Settings.TimerMinutes) * time.Minute
		pct := 0
		if total > 0 {
			pct = int(100 * (total - m.TimerRemaining) / total)
		}
		data.TimerLeft = formatDuration(int(m.TimerRemaining.Seconds()))
		data.TimerView = m.focusProgress.ViewAs(float64(pct) / 100)
		data.ProgressPct = pct
	}
	return views.RenderAnchorPanel(data)
}

func (m Model) journalPromptData() views.JournalPromptData {
	return views.JournalPromptData{
		Active:   m.Journal.Active,
		TaskText: m.Journal.TaskText,
		Energy:   m.Journal.Energy,
		Focus:    m.Journal.Focus,
		NoteView: m.journalNote.View(),
		Field:    string(m.Journal.Field),
	}
}

func clampLevel(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}
