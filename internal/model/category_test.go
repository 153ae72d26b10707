package model

import (
	"errors"
	"testing"
	"time"
)

func TestCategoryValidate(t *testing.T) {
	cat := Category{ID: "cat-1", Name: "Deep Work", Color: "#10b981", Icon: "🧠"}
	if err := cat.Validate(); err != nil {
		t.Fatalf("expected valid category, got: %v", err)
	}

	cat.Color = "10b981"
	if err := cat.Validate(); err == nil || !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got: %v", err)
	}

	cat.Color = "#10b98z"
	if err := cat.Validate(); err == nil || !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor for bad hex digit, got: %v", err)
	}
}

func TestBrainNoteValidate(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	note := BrainNote{ID: "note-1", Title: "Ideas", Content: "# Heading", CreatedAt: now, UpdatedAt: now}
	if err := note.Validate(); err != nil {
		t.Fatalf("expected valid note, got: %v", err)
	}

	note.Title = "   "
	if err := note.Validate(); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("expected default settings valid, got: %v", err)
	}

	s.HapticStrength = HapticStrength("extreme")
	if err := s.Validate(); err == nil || !errors.Is(err, ErrInvalidHapticStrength) {
		t.Fatalf("expected ErrInvalidHapticStrength, got: %v", err)
	}

	s = DefaultSettings()
	hour := 24
	s.DailyReminderHour = &hour
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for out-of-range reminder hour")
	}
}
