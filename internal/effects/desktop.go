// Package effects hosts the platform side effects the task store drives:
// desktop notifications, the focus widget, do-not-disturb and calendar
// sync. Everything degrades to a no-op on platforms without the
// underlying tool.
package effects

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ironclad/anchor/internal/model"
	"github.com/ironclad/anchor/internal/store"
)

type Notification struct {
	Title string
	Body  string
}

// Notifier delivers a desktop notification.
type Notifier interface {
	Send(Notification) error
}

type NoopNotifier struct{}

func (NoopNotifier) Send(Notification) error { return nil }

// ExecNotifier shells out to the platform notification tool.
type ExecNotifier struct{}

func (ExecNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// NotificationsEnabledFromEnv reports whether ANCHOR_DESKTOP_NOTIFICATIONS
// opts into real desktop notifications.
func NotificationsEnabledFromEnv() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("ANCHOR_DESKTOP_NOTIFICATIONS")))
	return v == "1" || v == "true" || v == "yes"
}

// Desktop implements the store effects on top of a Notifier. Widget and
// DND state is tracked so the current focus task can be surfaced in the
// UI; there is no system widget on desktop.
type Desktop struct {
	notifier Notifier

	mu         sync.Mutex
	widgetText string
	widgetLeft time.Duration
	dnd        bool
	events     map[string]calendarEvent
}

type calendarEvent struct {
	Text     string
	Deadline *time.Time
}

var _ store.Effects = (*Desktop)(nil)

func NewDesktop(notifier Notifier) *Desktop {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Desktop{
		notifier: notifier,
		events:   make(map[string]calendarEvent),
	}
}

// Haptic is a no-op on desktop. The store still calls it so a mobile
// build can vibrate.
func (d *Desktop) Haptic(strength model.HapticStrength) {}

func (d *Desktop) NotifyCompleted(text string) {
	// Delivery failures are not actionable here.
	_ = d.notifier.Send(Notification{Title: "Task complete", Body: text})
}

func (d *Desktop) StartTimerNotification(text string, minutes int) {
	_ = d.notifier.Send(Notification{
		Title: "Focus started",
		Body:  fmt.Sprintf("%s (%d min)", text, minutes),
	})
}

func (d *Desktop) StopTimerNotification() {}

func (d *Desktop) UpdateWidget(text string, remaining time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.widgetText = text
	d.widgetLeft = remaining
}

func (d *Desktop) ClearWidget() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.widgetText = ""
	d.widgetLeft = 0
}

// Widget returns the current widget contents for rendering.
func (d *Desktop) Widget() (string, time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.widgetText, d.widgetLeft
}

func (d *Desktop) EnableDND() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dnd = true
}

func (d *Desktop) DisableDND() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dnd = false
}

// DNDActive reports whether a focus session has quiet mode on.
func (d *Desktop) DNDActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dnd
}

// SyncTaskToCalendar records the deadline locally and returns a stable
// event id, reusing the existing one when the task was synced before.
func (d *Desktop) SyncTaskToCalendar(taskID, text string, deadline *time.Time, existingEventID string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	eventID := existingEventID
	if eventID == "" {
		eventID = uuid.New().String()
	}
	d.events[eventID] = calendarEvent{Text: text, Deadline: deadline}
	return eventID, nil
}
