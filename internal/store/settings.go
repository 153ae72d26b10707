package store

import "github.com/ironclad/anchor/internal/model"

// SettingsPatch is a shallow merge over the current settings. Nil fields
// stay as they are. Enum fields are checked so a bad patch cannot leave
// the store holding values the rest of the app will choke on.
type SettingsPatch struct {
	TimerMinutes      *int
	HapticStrength    *model.HapticStrength
	NotifyOnComplete  *bool
	DailyReminderHour **int
	Theme             *model.Theme
	FontScale         *model.FontScale
	HighContrast      *bool
	ReducedMotion     *bool
	CalendarSync      *bool
}

func (s *Store) UpdateSettings(patch SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := s.state.Settings
	if patch.TimerMinutes != nil && *patch.TimerMinutes > 0 {
		merged.TimerMinutes = *patch.TimerMinutes
	}
	if patch.HapticStrength != nil && patch.HapticStrength.IsValid() {
		merged.HapticStrength = *patch.HapticStrength
	}
	if patch.NotifyOnComplete != nil {
		merged.NotifyOnComplete = *patch.NotifyOnComplete
	}
	if patch.DailyReminderHour != nil {
		if *patch.DailyReminderHour == nil {
			merged.DailyReminderHour = nil
		} else {
			hour := **patch.DailyReminderHour
			if hour >= 0 && hour <= 23 {
				merged.DailyReminderHour = &hour
			}
		}
	}
	if patch.Theme != nil && patch.Theme.IsValid() {
		merged.Theme = *patch.Theme
	}
	if patch.FontScale != nil && patch.FontScale.IsValid() {
		merged.FontScale = *patch.FontScale
	}
	if patch.HighContrast != nil {
		merged.HighContrast = *patch.HighContrast
	}
	if patch.ReducedMotion != nil {
		merged.ReducedMotion = *patch.ReducedMotion
	}
	if patch.CalendarSync != nil {
		merged.CalendarSync = *patch.CalendarSync
	}
	s.state.Settings = merged
	s.commit()
}

// ClearAllData wipes everything back to an empty default state. This is
// the settings-screen full reset, distinct from Panic which only drops
// the active stack.
func (s *Store) ClearAllData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{
		Settings:      model.DefaultSettings(),
		CurrentEnergy: 3,
	}
	s.fireAnchorEffects()
	s.commit()
}
