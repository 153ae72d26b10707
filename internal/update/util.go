package update

import (
	"fmt"
	"time"
)

func formatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	min := totalSec / 60
	sec := totalSec % 60
	return fmt.Sprintf("%02d:%02d", min, sec)
}

func formatDeadline(deadline *time.Time) string {
	if deadline == nil {
		return ""
	}
	return deadline.Local().Format("2006-01-02")
}

func formatCompleted(completed *time.Time) string {
	if completed == nil {
		return ""
	}
	return completed.Local().Format("Jan 2 15:04")
}

// categoryNames maps stored category ids to display names, dropping ids
// that no longer resolve.
func (m Model) categoryNames(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		for _, cat := range m.State.Categories {
			if cat.ID == id {
				names = append(names, cat.Name)
				break
			}
		}
	}
	return names
}
