// Package commands parses the palette input into typed commands and
// dispatches them to the wired handlers.
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeLater   Type = "later"
	TypeDone    Type = "done"
	TypeDefer   Type = "defer"
	TypePromote Type = "promote"
	TypePanic   Type = "panic"
	TypeExport  Type = "export"
	TypeEnergy  Type = "energy"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs covers both add and later. Deadline comes from a trailing
// by:YYYY-MM-DD token, categories from cat: tokens.
type AddArgs struct {
	Text       string
	Now        bool
	Deadline   *time.Time
	Categories []string
}

type PromoteArgs struct {
	Index int
}

type ExportArgs struct {
	Format string
}

type EnergyArgs struct {
	Level int
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Promote *PromoteArgs
	Export  *ExportArgs
	Energy  *EnergyArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args, true)
	case TypeLater:
		return parseAdd(input, args, false)
	case TypeDone:
		return Command{Type: TypeDone, Raw: input}, nil
	case TypeDefer:
		return Command{Type: TypeDefer, Raw: input}, nil
	case TypePromote:
		return parsePromote(input, args)
	case TypePanic:
		return Command{Type: TypePanic, Raw: input}, nil
	case TypeExport:
		return parseExport(input, args)
	case TypeEnergy:
		return parseEnergy(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string, now bool) (Command, error) {
	verb := "add"
	if !now {
		verb = "later"
	}
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: verb + " requires task text"}
	}

	words := make([]string, 0, len(args))
	var deadline *time.Time
	var categories []string
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "by:"):
			value := strings.TrimSpace(strings.TrimPrefix(arg, "by:"))
			parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid deadline: %s", value)}
			}
			deadline = &parsed
		case strings.HasPrefix(lower, "cat:"):
			value := strings.TrimSpace(strings.TrimPrefix(arg, "cat:"))
			if value != "" {
				categories = append(categories, value)
			}
		default:
			words = append(words, arg)
		}
	}

	text := strings.TrimSpace(strings.Join(words, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: verb + " requires task text"}
	}
	cmdType := TypeAdd
	if !now {
		cmdType = TypeLater
	}
	return Command{Type: cmdType, Raw: raw, Add: &AddArgs{
		Text:       text,
		Now:        now,
		Deadline:   deadline,
		Categories: categories,
	}}, nil
}

func parsePromote(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "promote requires a backlog position"}
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid backlog position: %s", args[0])}
	}
	return Command{Type: TypePromote, Raw: raw, Promote: &PromoteArgs{Index: index - 1}}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires a format: json, csv or md"}
	}
	format := strings.ToLower(args[0])
	switch format {
	case "json", "csv", "md":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unsupported export format: %s", format)}
	}
	return Command{Type: TypeExport, Raw: raw, Export: &ExportArgs{Format: format}}, nil
}

func parseEnergy(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "energy requires a level from 1 to 5"}
	}
	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 || level > 5 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid energy level: %s", args[0])}
	}
	return Command{Type: TypeEnergy, Raw: raw, Energy: &EnergyArgs{Level: level}}, nil
}
