package store

import (
	"encoding/json"
	"fmt"

	"github.com/ironclad/anchor/internal/model"
)

// EncodeState renders a snapshot as the persisted JSON blob.
func EncodeState(st State) ([]byte, error) {
	return json.Marshal(st)
}

// DecodeState parses a persisted blob back into a State. The caller is
// expected to hand the result to NewWithState, which normalizes it.
func DecodeState(payload []byte) (State, error) {
	var st State
	if err := json.Unmarshal(payload, &st); err != nil {
		return State{}, fmt.Errorf("store: decode state: %w", err)
	}
	return st, nil
}

type importPayload struct {
	Stack    []model.Task    `json:"stack"`
	Backlog  []model.Task    `json:"backlog"`
	History  []model.Task    `json:"history"`
	Settings json.RawMessage `json:"settings"`
}

// ImportJSON replaces stack, backlog, history and settings wholesale from
// a backup document. A parse failure leaves the current state untouched;
// there is no partial overwrite. Notes and categories are not part of the
// backup format and survive the import.
func (s *Store) ImportJSON(data []byte) error {
	var payload importPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("store: import: %w", err)
	}
	settings := model.DefaultSettings()
	if len(payload.Settings) > 0 {
		if err := json.Unmarshal(payload.Settings, &settings); err != nil {
			return fmt.Errorf("store: import settings: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Stack = payload.Stack
	next.Backlog = payload.Backlog
	next.History = payload.History
	next.Settings = settings
	next.PendingJournalTaskID = ""
	next.TimerStart = nil
	s.state = normalize(next)
	s.fireAnchorEffects()
	s.commit()
	return nil
}
