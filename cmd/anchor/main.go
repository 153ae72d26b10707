package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ironclad/anchor/internal/effects"
	"github.com/ironclad/anchor/internal/export"
	"github.com/ironclad/anchor/internal/scheduler"
	"github.com/ironclad/anchor/internal/storage"
	"github.com/ironclad/anchor/internal/store"
	"github.com/ironclad/anchor/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "anchor failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	snaps, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer snaps.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	state, err := loadState(ctx, snaps)
	cancel()
	if err != nil {
		return err
	}

	var notifier effects.Notifier = effects.NoopNotifier{}
	if cfg.DesktopNotifications {
		notifier = effects.ExecNotifier{}
	}
	st := store.NewWithState(state, effects.NewDesktop(notifier))

	saver := storage.NewSaver(snaps, storage.StateKey, time.Duration(cfg.SaveDebounceMillis)*time.Millisecond, func(err error) {
		fmt.Fprintf(os.Stderr, "anchor: save failed: %v\n", err)
	})
	defer saver.Close()
	st.SetOnChange(func(snapshot store.State) {
		payload, err := store.EncodeState(snapshot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "anchor: encode state failed: %v\n", err)
			return
		}
		saver.Queue(payload)
	})

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()
	scheduleDailyReminder(engine, st.Snapshot())

	exporter := export.NewExporter(cfg.ExportDir, nil)

	program := tea.NewProgram(update.NewModelWithRuntime(st, engine, exporter, cfg))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return saver.Flush()
}

func loadState(ctx context.Context, snaps *storage.Snapshots) (store.State, error) {
	payload, err := snaps.Load(ctx, storage.StateKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return store.State{}, nil
		}
		return store.State{}, fmt.Errorf("load state: %w", err)
	}
	state, err := store.DecodeState(payload)
	if err != nil {
		// A corrupt snapshot should not brick the app. Start fresh and
		// let the next save replace it.
		fmt.Fprintf(os.Stderr, "anchor: stored state unreadable, starting fresh: %v\n", err)
		return store.State{}, nil
	}
	return state, nil
}

func scheduleDailyReminder(engine *scheduler.Engine, state store.State) {
	if state.Settings.DailyReminderHour == nil {
		return
	}
	hour := *state.Settings.DailyReminderHour
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.Local)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	_ = engine.Schedule(scheduler.Event{
		ID:        "daily-reminder",
		Kind:      scheduler.KindDailyReminder,
		TriggerAt: next,
	})
}
