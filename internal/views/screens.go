package views

import (
	"fmt"
	"strings"
)

type StackItemData struct {
	ID         string
	Text       string
	Deadline   string
	Categories []string
}

type AnchorPanelData struct {
	Anchor        *StackItemData
	Rest          []StackItemData
	TimerView     string
	TimerLeft     string
	ProgressPct   int
	CurrentEnergy int
	InputView     string
	InputActive   bool
}

type BacklogPanelData struct {
	Items      []StackItemData
	SelectedID string
	Reordering bool
}

type HistoryItemData struct {
	ID        string
	Text      string
	Completed string
	Energy    int
	Focus     int
	Note      string
}

type HistoryPanelData struct {
	Items      []HistoryItemData
	SelectedID string
}

type JournalPromptData struct {
	Active   bool
	TaskText string
	Energy   int
	Focus    int
	NoteView string
	Field    string
}

type NoteItemData struct {
	ID         string
	Title      string
	Updated    string
	Categories []string
}

type BrainPanelData struct {
	Notes        []NoteItemData
	SelectedID   string
	PreviewView  string
	EditorActive bool
	EditorView   string
}

type SettingsPanelData struct {
	TimerMinutes      int
	HapticStrength    string
	NotifyOnComplete  bool
	DailyReminderHour string
	Theme             string
	FontScale         string
	HighContrast      bool
	ReducedMotion     bool
	CalendarSync      bool
	SelectedRow       int
}

type CategoryItemData struct {
	ID    string
	Name  string
	Color string
	Icon  string
	Tasks int
	Notes int
}

type CategoryPanelData struct {
	Items      []CategoryItemData
	SelectedID string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
}

func RenderAnchorPanel(data AnchorPanelData) string {
	var b strings.Builder
	b.WriteString("anchor:\n")
	if data.Anchor == nil {
		b.WriteString("(stack empty, add a task or promote one)\n")
	} else {
		b.WriteString(fmt.Sprintf(">> %s\n", data.Anchor.Text))
		if data.Anchor.Deadline != "" {
			b.WriteString(fmt.Sprintf("   due:%s\n", data.Anchor.Deadline))
		}
		if len(data.Anchor.Categories) > 0 {
			b.WriteString(fmt.Sprintf("   #%s\n", strings.Join(data.Anchor.Categories, " #")))
		}
		b.WriteString(fmt.Sprintf("timer: %s %s %d%%\n", data.TimerLeft, data.TimerView, data.ProgressPct))
	}
	b.WriteString(fmt.Sprintf("energy: %s\n", energyGauge(data.CurrentEnergy)))
	if len(data.Rest) > 0 {
		b.WriteString("\nup next:\n")
		for i, item := range data.Rest {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+2, item.Text))
		}
	}
	if data.InputActive {
		b.WriteString("\nnew task: " + data.InputView + "\n")
	}
	b.WriteString("actions: [a]add [enter]done [d]defer [P]panic [tab]backlog\n")
	return strings.TrimSpace(b.String())
}

func RenderBacklogPanel(data BacklogPanelData) string {
	var b strings.Builder
	b.WriteString("backlog:\n")
	if data.Reordering {
		b.WriteString("reordering: [J/K]move item [esc]done\n")
	} else {
		b.WriteString("actions: [j/k]move [enter]promote [e]edit [x]delete [m]reorder\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("(backlog empty)")
		return b.String()
	}
	for i, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s", cursor, i+1, item.Text))
		if item.Deadline != "" {
			b.WriteString(fmt.Sprintf(" due:%s", item.Deadline))
		}
		if len(item.Categories) > 0 {
			b.WriteString(" #" + strings.Join(item.Categories, " #"))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString("history:\n")
	b.WriteString("actions: [j/k]move [x]delete\n")
	if len(data.Items) == 0 {
		b.WriteString("(nothing completed yet)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s [x] %s (%s)", cursor, item.Text, item.Completed))
		if item.Energy > 0 {
			b.WriteString(fmt.Sprintf(" e:%d f:%d", item.Energy, item.Focus))
		}
		b.WriteString("\n")
		if item.Note != "" && data.SelectedID == item.ID {
			for _, line := range strings.Split(item.Note, "\n") {
				b.WriteString("    > " + line + "\n")
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderJournalPrompt(data JournalPromptData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("journal:\n")
	b.WriteString(fmt.Sprintf("completed: %s\n", data.TaskText))
	b.WriteString(fmt.Sprintf("%s energy: %s\n", fieldCursor(data.Field, "energy"), energyGauge(data.Energy)))
	b.WriteString(fmt.Sprintf("%s focus:  %s\n", fieldCursor(data.Field, "focus"), energyGauge(data.Focus)))
	b.WriteString(fmt.Sprintf("%s note:   %s\n", fieldCursor(data.Field, "note"), data.NoteView))
	b.WriteString("keys: [tab]field [h/l]adjust [enter]save [esc]skip")
	return b.String()
}

func RenderBrainPanel(data BrainPanelData) string {
	var b strings.Builder
	b.WriteString("brain:\n")
	b.WriteString("actions: [n]new [e]edit [x]delete [L]link-task\n")
	if len(data.Notes) == 0 {
		b.WriteString("(no notes)\n")
	}
	for _, note := range data.Notes {
		cursor := " "
		if data.SelectedID == note.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s (%s)", cursor, note.Title, note.Updated))
		if len(note.Categories) > 0 {
			b.WriteString(" #" + strings.Join(note.Categories, " #"))
		}
		b.WriteString("\n")
	}
	if data.EditorActive {
		b.WriteString("\neditor:\n" + data.EditorView + "\n")
	} else if data.PreviewView != "" {
		b.WriteString("\npreview:\n" + data.PreviewView + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderSettingsPanel(data SettingsPanelData) string {
	rows := []string{
		fmt.Sprintf("focus timer: %d min", data.TimerMinutes),
		fmt.Sprintf("haptics: %s", data.HapticStrength),
		fmt.Sprintf("notify on complete: %s", onOff(data.NotifyOnComplete)),
		fmt.Sprintf("daily reminder: %s", data.DailyReminderHour),
		fmt.Sprintf("theme: %s", data.Theme),
		fmt.Sprintf("font scale: %s", data.FontScale),
		fmt.Sprintf("high contrast: %s", onOff(data.HighContrast)),
		fmt.Sprintf("reduced motion: %s", onOff(data.ReducedMotion)),
		fmt.Sprintf("calendar sync: %s", onOff(data.CalendarSync)),
	}
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("actions: [j/k]move [h/l]adjust [D]clear all data\n")
	for i, row := range rows {
		cursor := " "
		if i == data.SelectedRow {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, row))
	}
	return strings.TrimSpace(b.String())
}

func RenderCategoryPanel(data CategoryPanelData) string {
	var b strings.Builder
	b.WriteString("categories:\n")
	b.WriteString("actions: [n]new [e]edit [x]delete\n")
	if len(data.Items) == 0 {
		b.WriteString("(no categories)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s (tasks:%d notes:%d)\n", cursor, item.Icon, item.Name, item.Color, item.Tasks, item.Notes))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
	)
}

func energyGauge(level int) string {
	if level < 0 {
		level = 0
	}
	if level > 5 {
		level = 5
	}
	return strings.Repeat("●", level) + strings.Repeat("○", 5-level)
}

func fieldCursor(current, field string) string {
	if current == field {
		return ">"
	}
	return " "
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
