// Package export serializes the app state into the three durable formats:
// a JSON backup, a CSV history and a Markdown journal. Files are written
// atomically and then handed to a share collaborator.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ironclad/anchor/internal/model"
	"github.com/ironclad/anchor/internal/store"
)

const (
	backupFileName  = "anchor_backup.json"
	historyFileName = "anchor_history.csv"
	markdownPattern = "anchor_export_%s.md"
)

var csvHeader = []string{"Task", "Created", "Completed", "Energy", "Focus", "Note"}

// ShareFunc hands a written file to the platform share action. A nil
// share means write-only.
type ShareFunc func(path string) error

type Exporter struct {
	dir   string
	share ShareFunc
	now   func() time.Time
}

func NewExporter(dir string, share ShareFunc) *Exporter {
	return &Exporter{
		dir:   dir,
		share: share,
		now:   func() time.Time { return time.Now() },
	}
}

// SetClock overrides the time source. Test hook.
func (e *Exporter) SetClock(now func() time.Time) { e.now = now }

// backup is the wire shape of the JSON export: the task collections plus
// settings, nothing else. Notes and categories stay on the device.
type backup struct {
	Stack    []model.Task   `json:"stack"`
	Backlog  []model.Task   `json:"backlog"`
	History  []model.Task   `json:"history"`
	Settings model.Settings `json:"settings"`
}

// ExportData writes the full backup file and shares it.
func (e *Exporter) ExportData(st store.State) (string, error) {
	payload, err := MarshalBackup(st)
	if err != nil {
		return "", err
	}
	return e.writeAndShare(backupFileName, payload)
}

// MarshalBackup renders the backup document as pretty-printed JSON.
func MarshalBackup(st store.State) ([]byte, error) {
	doc := backup{
		Stack:    st.Stack,
		Backlog:  st.Backlog,
		History:  st.History,
		Settings: st.Settings,
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal backup: %w", err)
	}
	return payload, nil
}

// ExportCSV writes the history file and shares it.
func (e *Exporter) ExportCSV(history []model.Task) (string, error) {
	payload, err := MarshalCSV(history)
	if err != nil {
		return "", err
	}
	return e.writeAndShare(historyFileName, payload)
}

// MarshalCSV renders history rows. Embedded quotes are escaped by
// doubling per RFC 4180; empty optional fields render as empty strings.
func MarshalCSV(history []model.Task) ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export: write csv header: %w", err)
	}
	for _, task := range history {
		completed := ""
		if task.CompletedAt != nil {
			completed = task.CompletedAt.UTC().Format(time.RFC3339)
		}
		energy, focus, note := "", "", ""
		if task.Journal != nil {
			energy = strconv.Itoa(task.Journal.Energy)
			focus = strconv.Itoa(task.Journal.Focus)
			note = task.Journal.Note
		}
		row := []string{
			task.Text,
			task.CreatedAt.UTC().Format(time.RFC3339),
			completed,
			energy,
			focus,
			note,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush csv: %w", err)
	}
	return []byte(b.String()), nil
}

// ExportMarkdown writes the dated journal file and shares it.
func (e *Exporter) ExportMarkdown(history []model.Task) (string, error) {
	now := e.now()
	payload, err := MarshalMarkdown(history, now)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf(markdownPattern, now.Format("2006-01-02"))
	return e.writeAndShare(name, payload)
}

// frontmatter is the YAML header of the Markdown export.
type frontmatter struct {
	Title      string `yaml:"title"`
	ExportedAt string `yaml:"exported_at"`
	TotalTasks int    `yaml:"total_tasks"`
}

// MarshalMarkdown groups completed tasks by local calendar day, one
// section per day in chronological order, and closes with summary stats.
func MarshalMarkdown(history []model.Task, now time.Time) ([]byte, error) {
	meta := frontmatter{
		Title:      "Anchor Journal",
		ExportedAt: now.Format(time.RFC3339),
		TotalTasks: len(history),
	}
	head, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("export: marshal frontmatter: %w", err)
	}

	byDay := make(map[string][]model.Task)
	days := make([]string, 0)
	for _, task := range history {
		if task.CompletedAt == nil {
			continue
		}
		day := task.CompletedAt.Local().Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], task)
	}
	sort.Strings(days)

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n")

	for _, day := range days {
		b.WriteString("\n## " + day + "\n\n")
		tasks := byDay[day]
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CompletedAt.Before(*tasks[j].CompletedAt)
		})
		for _, task := range tasks {
			b.WriteString("- [x] " + task.Text)
			if task.Journal != nil {
				b.WriteString(fmt.Sprintf(" `energy:%d/5` `focus:%d/5`", task.Journal.Energy, task.Journal.Focus))
			}
			b.WriteString("\n")
			if task.Journal != nil && strings.TrimSpace(task.Journal.Note) != "" {
				for _, line := range strings.Split(task.Journal.Note, "\n") {
					b.WriteString("  > " + line + "\n")
				}
			}
		}
	}

	journaled := 0
	energySum, focusSum := 0, 0
	for _, task := range history {
		if task.Journal != nil {
			journaled++
			energySum += task.Journal.Energy
			focusSum += task.Journal.Focus
		}
	}
	b.WriteString("\n## Summary\n\n")
	b.WriteString(fmt.Sprintf("- Total completed: %d\n", len(history)))
	b.WriteString(fmt.Sprintf("- Journaled: %d\n", journaled))
	if journaled > 0 {
		b.WriteString(fmt.Sprintf("- Average energy: %.1f/5\n", float64(energySum)/float64(journaled)))
		b.WriteString(fmt.Sprintf("- Average focus: %.1f/5\n", float64(focusSum)/float64(journaled)))
	}
	return []byte(b.String()), nil
}

// writeAndShare lands the payload atomically (temp file + rename) and
// invokes the share collaborator. A share failure is reported to the
// caller but the file stays on disk.
func (e *Exporter) writeAndShare(name string, payload []byte) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir: %w", err)
	}
	path := filepath.Join(e.dir, name)
	tmp, err := os.CreateTemp(e.dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("export: create temp file: %w", err)
	}
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(payload); err != nil {
		return "", fmt.Errorf("export: write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("export: sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("export: close %s: %w", name, err)
	}
	tmpName := tmp.Name()
	tmp = nil
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("export: rename %s: %w", name, err)
	}

	if e.share != nil {
		if err := e.share(path); err != nil {
			return path, fmt.Errorf("export: share %s: %w", name, err)
		}
	}
	return path, nil
}
