package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ironclad/anchor/internal/scheduler"
	"github.com/ironclad/anchor/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForReminderCmd(m.Scheduler.C()))
	}
	if m.State.TimerStart != nil {
		cmds = append(cmds, focusTickCmd())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		if m.Journal.Active {
			return m.handleJournalKey(typed), nil
		}
		if m.Capture != CaptureNone {
			return m.handleCaptureKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Anchor:
			m.CurrentView = ViewAnchor
			return m, nil
		case m.Keys.Backlog:
			m.CurrentView = ViewBacklog
			return m, nil
		case m.Keys.History:
			m.CurrentView = ViewHistory
			return m, nil
		case m.Keys.Brain:
			m.CurrentView = ViewBrain
			return m, nil
		case m.Keys.Categories:
			m.CurrentView = ViewCategories
			return m, nil
		case m.Keys.Settings:
			m.CurrentView = ViewSettings
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewAnchor:
			return m.handleAnchorKey(typed)
		case ViewBacklog:
			return m.handleBacklogKey(typed), nil
		case ViewHistory:
			return m.handleHistoryKey(typed), nil
		case ViewBrain:
			return m.handleBrainKey(typed), nil
		case ViewCategories:
			return m.handleCategoryKey(typed), nil
		case ViewSettings:
			return m.handleSettingsKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick()
	case ReminderDueMsg:
		m = m.applyReminder(typed.Event)
		if m.Scheduler != nil {
			return m, waitForReminderCmd(m.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	switch m.CurrentView {
	case ViewAnchor:
		leftPane = m.renderAnchorView()
	case ViewBacklog:
		leftPane = m.renderBacklogView()
	case ViewHistory:
		leftPane = m.renderHistoryView()
	case ViewBrain:
		leftPane = m.renderBrainView()
	case ViewCategories:
		leftPane = m.renderCategoryView()
	case ViewSettings:
		leftPane = m.renderSettingsView()
	}

	rightPane := strings.TrimSpace(strings.Join([]string{
		views.RenderJournalPrompt(m.journalPromptData()),
		views.RenderCommandPalette(m.Palette.Active, m.Palette.Input),
		m.renderHelpIfVisible(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("anchor | view: %s | stack: %d | backlog: %d", m.CurrentView, len(m.State.Stack), len(m.State.Backlog)),
		LeftPane:      leftPane,
		RightPane:     rightPane,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Footer: fmt.Sprintf("keys: %s anchor | %s backlog | %s history | %s brain | %s cats | %s settings | / cmd | %s help | %s quit",
			m.Keys.Anchor, m.Keys.Backlog, m.Keys.History, m.Keys.Brain, m.Keys.Categories, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    bindingsForView(m.CurrentView),
	})
}

func bindingsForView(v View) []string {
	switch v {
	case ViewAnchor:
		return []string{"[a] add to stack", "[l] add to backlog", "[enter] complete anchor", "[d] defer anchor", "[P] panic"}
	case ViewBacklog:
		return []string{"[j/k] move", "[enter] promote", "[x] delete", "[m] toggle reorder", "[J/K] move item"}
	case ViewHistory:
		return []string{"[j/k] move"}
	case ViewBrain:
		return []string{"[j/k] move", "[n] new note", "[e] edit", "[x] delete"}
	case ViewCategories:
		return []string{"[j/k] move", "[n] new category", "[x] delete"}
	case ViewSettings:
		return []string{"[j/k] move", "[h/l] adjust", "[D] clear all data"}
	default:
		return nil
	}
}

func waitForReminderCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func focusTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{} })
}
