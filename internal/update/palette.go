package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ironclad/anchor/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.Store.AddTask(a.Text, a.Now, a.Deadline, m.resolveCategoryIDs(a.Categories))
			m.refreshState()
			if a.Now {
				return commands.Result{Message: fmt.Sprintf("new anchor: %s", a.Text)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("queued: %s", a.Text)}, nil
		},
		Done: func() (commands.Result, error) {
			if len(m.State.Stack) == 0 {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "stack is empty"}
			}
			done := m.State.Stack[0]
			m.Store.CompleteTop()
			m.refreshState()
			m.openJournalPrompt(done.ID, done.Text)
			return commands.Result{Message: fmt.Sprintf("completed: %s", done.Text)}, nil
		},
		Defer: func() (commands.Result, error) {
			if len(m.State.Stack) == 0 {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "stack is empty"}
			}
			text := m.State.Stack[0].Text
			m.Store.DeferTop()
			m.refreshState()
			return commands.Result{Message: fmt.Sprintf("deferred: %s", text)}, nil
		},
		Promote: func(p commands.PromoteArgs) (commands.Result, error) {
			if p.Index >= len(m.State.Backlog) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no backlog item at that position"}
			}
			task := m.State.Backlog[p.Index]
			m.Store.Promote(task.ID)
			m.refreshState()
			return commands.Result{Message: fmt.Sprintf("promoted: %s", task.Text)}, nil
		},
		Panic: func() (commands.Result, error) {
			m.Store.Panic()
			m.refreshState()
			m.cancelFocusTriggers()
			return commands.Result{Message: "stack cleared"}, nil
		},
		Export: func(e commands.ExportArgs) (commands.Result, error) {
			return m.runExport(e.Format)
		},
		Energy: func(e commands.EnergyArgs) (commands.Result, error) {
			m.Store.SetCurrentEnergy(e.Level)
			m.refreshState()
			return commands.Result{Message: fmt.Sprintf("energy set to %d/5", e.Level)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) runExport(format string) (commands.Result, error) {
	if m.Exporter == nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "export is not configured"}
	}
	var (
		path string
		err  error
	)
	switch format {
	case "json":
		path, err = m.Exporter.ExportData(m.State)
	case "csv":
		path, err = m.Exporter.ExportCSV(m.State.History)
	case "md":
		path, err = m.Exporter.ExportMarkdown(m.State.History)
	}
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Message: fmt.Sprintf("exported %s", path)}, nil
}

// resolveCategoryIDs matches palette cat: tokens against category names
// case-insensitively, and keeps raw ids as a fallback.
func (m Model) resolveCategoryIDs(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	ids := make([]string, 0, len(names))
	for _, name := range names {
		matched := name
		for _, cat := range m.State.Categories {
			if strings.EqualFold(cat.Name, name) {
				matched = cat.ID
				break
			}
		}
		ids = append(ids, matched)
	}
	return ids
}
