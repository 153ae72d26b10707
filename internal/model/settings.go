package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHapticStrength = errors.New("model: invalid haptic strength")
	ErrInvalidTheme          = errors.New("model: invalid theme")
	ErrInvalidFontScale      = errors.New("model: invalid font scale")
)

type HapticStrength string

const (
	HapticOff    HapticStrength = "off"
	HapticLight  HapticStrength = "light"
	HapticMedium HapticStrength = "medium"
	HapticHeavy  HapticStrength = "heavy"
)

func (h HapticStrength) IsValid() bool {
	switch h {
	case HapticOff, HapticLight, HapticMedium, HapticHeavy:
		return true
	default:
		return false
	}
}

type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeDark, ThemeLight, ThemeSystem:
		return true
	default:
		return false
	}
}

type FontScale string

const (
	FontScaleSmall  FontScale = "small"
	FontScaleNormal FontScale = "normal"
	FontScaleLarge  FontScale = "large"
)

func (f FontScale) IsValid() bool {
	switch f {
	case FontScaleSmall, FontScaleNormal, FontScaleLarge:
		return true
	default:
		return false
	}
}

// Settings is flat configuration. Validation covers the enumerated fields
// only; everything else is taken as-is.
type Settings struct {
	TimerMinutes      int            `json:"timerMinutes"`
	HapticStrength    HapticStrength `json:"hapticStrength"`
	NotifyOnComplete  bool           `json:"notifyOnComplete"`
	DailyReminderHour *int           `json:"dailyReminderHour,omitempty"`
	Theme             Theme          `json:"theme"`
	FontScale         FontScale      `json:"fontScale"`
	HighContrast      bool           `json:"highContrast"`
	ReducedMotion     bool           `json:"reducedMotion"`
	CalendarSync      bool           `json:"calendarSync"`
}

func DefaultSettings() Settings {
	hour := 9
	return Settings{
		TimerMinutes:      25,
		HapticStrength:    HapticMedium,
		NotifyOnComplete:  true,
		DailyReminderHour: &hour,
		Theme:             ThemeDark,
		FontScale:         FontScaleNormal,
	}
}

func (s Settings) Validate() error {
	if s.TimerMinutes <= 0 {
		return errors.New("model: timerMinutes must be positive")
	}
	if !s.HapticStrength.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidHapticStrength, s.HapticStrength)
	}
	if !s.Theme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, s.Theme)
	}
	if !s.FontScale.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFontScale, s.FontScale)
	}
	if s.DailyReminderHour != nil && (*s.DailyReminderHour < 0 || *s.DailyReminderHour > 23) {
		return fmt.Errorf("model: dailyReminderHour out of range: %d", *s.DailyReminderHour)
	}
	return nil
}
