package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ironclad/anchor/internal/model"
	"github.com/ironclad/anchor/internal/store"
	"github.com/ironclad/anchor/internal/views"
)

const settingsRowCount = 9

func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j":
		m.SettingsCur = clampCursor(m.SettingsCur+1, settingsRowCount)
	case "k":
		m.SettingsCur = clampCursor(m.SettingsCur-1, settingsRowCount)
	case "h":
		m.adjustSetting(-1)
	case "l":
		m.adjustSetting(1)
	case "D":
		m.Store.ClearAllData()
		m.refreshState()
		m.cancelFocusTriggers()
		m.Status = StatusBar{Text: "all data cleared"}
	}
	return m
}

func (m *Model) adjustSetting(delta int) {
	s := m.State.Settings
	var patch store.SettingsPatch
	switch m.SettingsCur {
	case 0:
		minutes := s.TimerMinutes + 5*delta
		if minutes < 5 {
			minutes = 5
		}
		patch.TimerMinutes = &minutes
	case 1:
		strength := cycleHaptic(s.HapticStrength, delta)
		patch.HapticStrength = &strength
	case 2:
		v := !s.NotifyOnComplete
		patch.NotifyOnComplete = &v
	case 3:
		hour := cycleReminderHour(s.DailyReminderHour, delta)
		patch.DailyReminderHour = &hour
	case 4:
		theme := cycleTheme(s.Theme, delta)
		patch.Theme = &theme
	case 5:
		scale := cycleFontScale(s.FontScale, delta)
		patch.FontScale = &scale
	case 6:
		v := !s.HighContrast
		patch.HighContrast = &v
	case 7:
		v := !s.ReducedMotion
		patch.ReducedMotion = &v
	case 8:
		v := !s.CalendarSync
		patch.CalendarSync = &v
	}
	m.Store.UpdateSettings(patch)
	m.refreshState()
}

func cycleHaptic(current model.HapticStrength, delta int) model.HapticStrength {
	order := []model.HapticStrength{model.HapticOff, model.HapticLight, model.HapticMedium, model.HapticHeavy}
	return order[cycleIndex(indexOfHaptic(order, current), delta, len(order))]
}

func cycleTheme(current model.Theme, delta int) model.Theme {
	order := []model.Theme{model.ThemeDark, model.ThemeLight, model.ThemeSystem}
	idx := 0
	for i, t := range order {
		if t == current {
			idx = i
		}
	}
	return order[cycleIndex(idx, delta, len(order))]
}

func cycleFontScale(current model.FontScale, delta int) model.FontScale {
	order := []model.FontScale{model.FontScaleSmall, model.FontScaleNormal, model.FontScaleLarge}
	idx := 0
	for i, f := range order {
		if f == current {
			idx = i
		}
	}
	return order[cycleIndex(idx, delta, len(order))]
}

// cycleReminderHour walks 0..23 and uses nil for "off" past either end.
func cycleReminderHour(current *int, delta int) *int {
	if current == nil {
		hour := 9
		if delta < 0 {
			hour = 23
		}
		return &hour
	}
	hour := *current + delta
	if hour < 0 || hour > 23 {
		return nil
	}
	return &hour
}

func indexOfHaptic(order []model.HapticStrength, current model.HapticStrength) int {
	for i, h := range order {
		if h == current {
			return i
		}
	}
	return 0
}

func cycleIndex(idx, delta, length int) int {
	idx = (idx + delta) % length
	if idx < 0 {
		idx += length
	}
	return idx
}

func (m Model) renderSettingsView() string {
	s := m.State.Settings
	reminder := "off"
	if s.DailyReminderHour != nil {
		reminder = fmt.Sprintf("%02d:00", *s.DailyReminderHour)
	}
	return views.RenderSettingsPanel(views.SettingsPanelData{
		TimerMinutes:      s.TimerMinutes,
		HapticStrength:    string(s.HapticStrength),
		NotifyOnComplete:  s.NotifyOnComplete,
		DailyReminderHour: reminder,
		Theme:             string(s.Theme),
		FontScale:         string(s.FontScale),
		HighContrast:      s.HighContrast,
		ReducedMotion:     s.ReducedMotion,
		CalendarSync:      s.CalendarSync,
		SelectedRow:       m.SettingsCur,
	})
}
