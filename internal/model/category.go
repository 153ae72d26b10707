package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidColor = errors.New("model: invalid category color")

// Category is a global label referenced by id from tasks and brain notes.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: category id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("model: category name is required")
	}
	if !isHexColor(c.Color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c.Color)
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// BrainNote is a free-form markdown note. UpdatedAt moves on every edit,
// CreatedAt never does.
type BrainNote struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Categories  []string  `json:"categories,omitempty"`
	LinkedTasks []string  `json:"linkedTasks,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (n BrainNote) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: note id is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("model: note title is required")
	}
	if n.CreatedAt.IsZero() {
		return errors.New("model: note createdAt is required")
	}
	return nil
}

func (n BrainNote) HasCategory(id string) bool {
	for _, c := range n.Categories {
		if c == id {
			return true
		}
	}
	return false
}
