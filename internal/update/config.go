package update

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DesktopNotifications bool
	DBPath               string
	ExportDir            string
	SaveDebounceMillis   int
	SchedulerBuffer      int
	StartView            string
}

func DefaultRuntimeConfig() RuntimeConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".anchor")
	return RuntimeConfig{
		DesktopNotifications: false,
		DBPath:               filepath.Join(dataDir, "anchor.db"),
		ExportDir:            filepath.Join(dataDir, "exports"),
		SaveDebounceMillis:   500,
		SchedulerBuffer:      64,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("ANCHOR_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := strings.TrimSpace(os.Getenv("ANCHOR_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("ANCHOR_EXPORT_DIR")); v != "" {
		cfg.ExportDir = v
	}
	if v, ok := getEnvInt("ANCHOR_SAVE_DEBOUNCE_MS"); ok && v > 0 {
		cfg.SaveDebounceMillis = v
	}
	if v, ok := getEnvInt("ANCHOR_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v := strings.TrimSpace(os.Getenv("ANCHOR_START_VIEW")); v != "" {
		cfg.StartView = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
