package store

import (
	"errors"
	"testing"
	"time"

	"github.com/ironclad/anchor/internal/model"
)

// spyEffects records collaborator calls so the tests can assert the store
// fires them at the right transitions.
type spyEffects struct {
	NoopEffects
	haptics       []model.HapticStrength
	timerStarts   []string
	timerStops    int
	widgetClears  int
	dndEnables    int
	dndDisables   int
	completed     []string
	calendarCalls int
	eventID       string
	syncErr       error
}

func (e *spyEffects) Haptic(strength model.HapticStrength) { e.haptics = append(e.haptics, strength) }
func (e *spyEffects) NotifyCompleted(text string)          { e.completed = append(e.completed, text) }
func (e *spyEffects) StartTimerNotification(text string, _ int) {
	e.timerStarts = append(e.timerStarts, text)
}
func (e *spyEffects) StopTimerNotification()      { e.timerStops++ }
func (e *spyEffects) ClearWidget()                { e.widgetClears++ }
func (e *spyEffects) EnableDND()                  {}
func (e *spyEffects) DisableDND()                 { e.dndDisables++ }
func (e *spyEffects) SyncTaskToCalendar(_, _ string, _ *time.Time, existing string) (string, error) {
	e.calendarCalls++
	if e.syncErr != nil {
		return "", e.syncErr
	}
	if e.eventID != "" {
		return e.eventID, nil
	}
	return existing, nil
}

func newSpyStore() (*Store, *spyEffects) {
	spy := &spyEffects{}
	s := New(spy)
	return s, spy
}

func TestAddNowFiresTimerEffects(t *testing.T) {
	s, spy := newSpyStore()
	s.AddTask("focus me", true, nil, nil)
	if len(spy.timerStarts) != 1 || spy.timerStarts[0] != "focus me" {
		t.Fatalf("expected timer notification for anchor, got %v", spy.timerStarts)
	}
	if len(spy.haptics) != 1 || spy.haptics[0] != model.HapticMedium {
		t.Fatalf("expected haptic at settings strength, got %v", spy.haptics)
	}
}

func TestAddLaterFiresNoTimerEffects(t *testing.T) {
	s, spy := newSpyStore()
	s.AddTask("for later", false, nil, nil)
	if len(spy.timerStarts) != 0 {
		t.Fatalf("backlog add must not start a timer, got %v", spy.timerStarts)
	}
}

func TestCompleteLastTaskStopsCollaborators(t *testing.T) {
	s, spy := newSpyStore()
	s.AddTask("only", true, nil, nil)
	s.CompleteTop()
	if spy.timerStops != 1 || spy.widgetClears != 1 || spy.dndDisables != 1 {
		t.Fatalf("expected stop/clear/disable once, got %d/%d/%d", spy.timerStops, spy.widgetClears, spy.dndDisables)
	}
	if len(spy.completed) != 1 || spy.completed[0] != "only" {
		t.Fatalf("expected completion notification, got %v", spy.completed)
	}
}

func TestCompleteNotificationRespectsSetting(t *testing.T) {
	s, spy := newSpyStore()
	off := false
	s.UpdateSettings(SettingsPatch{NotifyOnComplete: &off})
	s.AddTask("quiet", true, nil, nil)
	s.CompleteTop()
	if len(spy.completed) != 0 {
		t.Fatalf("expected no completion notification, got %v", spy.completed)
	}
}

func TestPanicUsesHeavyHaptic(t *testing.T) {
	s, spy := newSpyStore()
	s.AddTask("anchor", true, nil, nil)
	s.Panic()
	last := spy.haptics[len(spy.haptics)-1]
	if last != model.HapticHeavy {
		t.Fatalf("expected heavy haptic on panic, got %q", last)
	}
	if spy.timerStops == 0 {
		t.Fatal("expected timer notification stopped on panic")
	}
}

func TestCalendarSyncWritesBackEventID(t *testing.T) {
	s, spy := newSpyStore()
	on := true
	s.UpdateSettings(SettingsPatch{CalendarSync: &on})
	spy.eventID = "event-42"

	deadline := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	s.AddTask("with deadline", false, &deadline, nil)
	st := s.Snapshot()
	if spy.calendarCalls != 1 {
		t.Fatalf("expected one calendar sync, got %d", spy.calendarCalls)
	}
	if st.Backlog[0].CalendarEventID != "event-42" {
		t.Fatalf("expected event id recorded, got %q", st.Backlog[0].CalendarEventID)
	}
}

func TestCalendarSyncFailureKeepsStateChange(t *testing.T) {
	s, spy := newSpyStore()
	on := true
	s.UpdateSettings(SettingsPatch{CalendarSync: &on})
	spy.syncErr = errTest

	s.AddTask("task", false, nil, nil)
	id := s.Snapshot().Backlog[0].ID
	deadline := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	s.SetTaskDeadline(id, &deadline)

	got := s.Snapshot().Backlog[0]
	if got.Deadline == nil {
		t.Fatal("deadline change must survive a sync failure")
	}
	if got.CalendarEventID != "" {
		t.Fatalf("expected no event id on failure, got %q", got.CalendarEventID)
	}
}

func TestCalendarSyncDisabledByDefault(t *testing.T) {
	s, spy := newSpyStore()
	deadline := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	s.AddTask("task", false, &deadline, nil)
	if spy.calendarCalls != 0 {
		t.Fatalf("expected no calendar calls with sync off, got %d", spy.calendarCalls)
	}
}

var errTest = errors.New("calendar unavailable")
