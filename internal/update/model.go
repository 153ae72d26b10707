// Package update holds the Elm-style program model: all key handling,
// message routing and view composition on top of the task store.
package update

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/ironclad/anchor/internal/export"
	"github.com/ironclad/anchor/internal/scheduler"
	"github.com/ironclad/anchor/internal/store"
)

type View string

const (
	ViewAnchor     View = "Anchor"
	ViewBacklog    View = "Backlog"
	ViewHistory    View = "History"
	ViewBrain      View = "Brain"
	ViewCategories View = "Categories"
	ViewSettings   View = "Settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Anchor     string
	Backlog    string
	History    string
	Brain      string
	Categories string
	Settings   string
	Help       string
	Quit       string
}

type JournalField string

const (
	JournalFieldEnergy JournalField = "energy"
	JournalFieldFocus  JournalField = "focus"
	JournalFieldNote   JournalField = "note"
)

type JournalPromptState struct {
	Active   bool
	TaskID   string
	TaskText string
	Energy   int
	Focus    int
	Field    JournalField
}

type CaptureTarget string

const (
	CaptureNone     CaptureTarget = ""
	CaptureNow      CaptureTarget = "now"
	CaptureLater    CaptureTarget = "later"
	CaptureNote     CaptureTarget = "note"
	CaptureCategory CaptureTarget = "category"
)

type BacklogState struct {
	Cursor     int
	Reordering bool
}

type BrainState struct {
	Cursor       int
	EditorActive bool
	EditingID    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Store     *store.Store
	State     store.State
	Scheduler *scheduler.Engine
	Exporter  *export.Exporter

	CurrentView View
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool
	LastError   error

	Journal     JournalPromptState
	Palette     CommandPaletteState
	Capture     CaptureTarget
	Backlog     BacklogState
	HistoryCur  int
	Brain       BrainState
	CategoryCur int
	SettingsCur int

	TimerRemaining time.Duration

	taskInput     textinput.Model
	commandInput  textinput.Model
	journalNote   textinput.Model
	noteTitle     textinput.Model
	noteBody      textarea.Model
	focusProgress progress.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type FocusTickMsg struct{}

type ReminderDueMsg struct {
	Event scheduler.Event
}

func NewModel(st *store.Store) Model {
	m := Model{
		Store:       st,
		CurrentView: ViewAnchor,
		Keys: GlobalKeyMap{
			Anchor:     "1",
			Backlog:    "2",
			History:    "3",
			Brain:      "4",
			Categories: "5",
			Settings:   "6",
			Help:       "?",
			Quit:       "q",
		},
	}
	m.initComponents()
	m.refreshState()
	return m
}

func NewModelWithRuntime(st *store.Store, engine *scheduler.Engine, exporter *export.Exporter, cfg RuntimeConfig) Model {
	m := NewModel(st)
	m.Scheduler = engine
	m.Exporter = exporter
	if cfg.StartView != "" && isKnownView(View(cfg.StartView)) {
		m.CurrentView = View(cfg.StartView)
	}
	return m
}

func (m *Model) initComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Placeholder = "what needs doing?"
	m.taskInput.CharLimit = 200

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add pay rent by:2026-03-31"

	m.journalNote = textinput.New()
	m.journalNote.Placeholder = "how did it go?"

	m.noteTitle = textinput.New()
	m.noteTitle.Placeholder = "note title"

	m.noteBody = textarea.New()
	m.noteBody.Placeholder = "markdown body"
	m.noteBody.SetHeight(6)

	m.focusProgress = progress.New(progress.WithDefaultGradient())
}

// refreshState pulls a fresh snapshot after a store mutation and keeps
// the cursors in range.
func (m *Model) refreshState() {
	m.State = m.Store.Snapshot()
	m.Backlog.Cursor = clampCursor(m.Backlog.Cursor, len(m.State.Backlog))
	m.HistoryCur = clampCursor(m.HistoryCur, len(m.State.History))
	m.Brain.Cursor = clampCursor(m.Brain.Cursor, len(m.State.BrainNotes))
	m.CategoryCur = clampCursor(m.CategoryCur, len(m.State.Categories))
	m.TimerRemaining = m.timerRemainingAt(time.Now())
}

// timerRemainingAt derives the focus countdown from the running timer
// start and the configured block length.
func (m Model) timerRemainingAt(now time.Time) time.Duration {
	if m.State.TimerStart == nil {
		return 0
	}
	total := time.Duration(m.State.Settings.TimerMinutes) * time.Minute
	elapsed := now.Sub(*m.State.TimerStart)
	if elapsed >= total {
		return 0
	}
	return total - elapsed
}

func isKnownView(v View) bool {
	switch v {
	case ViewAnchor, ViewBacklog, ViewHistory, ViewBrain, ViewCategories, ViewSettings:
		return true
	default:
		return false
	}
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
