package commands

import (
	"errors"
	"testing"
	"time"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add file expense report", TypeAdd},
		{"later read design doc", TypeLater},
		{"done", TypeDone},
		{"/defer", TypeDefer},
		{"promote 2", TypePromote},
		{"panic", TypePanic},
		{"export csv", TypeExport},
		{"energy 4", TypeEnergy},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddExtractsTokens(t *testing.T) {
	cmd, err := Parse("add pay rent by:2026-03-31 cat:home cat:money")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Text != "pay rent" {
		t.Fatalf("text = %q, want %q", cmd.Add.Text, "pay rent")
	}
	if !cmd.Add.Now {
		t.Fatal("expected add to target the stack")
	}
	if cmd.Add.Deadline == nil {
		t.Fatal("expected deadline")
	}
	want := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)
	if !cmd.Add.Deadline.Equal(want) {
		t.Fatalf("deadline = %v, want %v", cmd.Add.Deadline, want)
	}
	if len(cmd.Add.Categories) != 2 || cmd.Add.Categories[0] != "home" || cmd.Add.Categories[1] != "money" {
		t.Fatalf("categories = %v", cmd.Add.Categories)
	}
}

func TestParseLaterTargetsBacklog(t *testing.T) {
	cmd, err := Parse("later clean desk")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Now {
		t.Fatal("expected later to target the backlog")
	}
}

func TestParsePromoteUsesOneBasedPositions(t *testing.T) {
	cmd, err := Parse("promote 3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Promote.Index != 2 {
		t.Fatalf("index = %d, want 2", cmd.Promote.Index)
	}

	_, err = Parse("promote 0")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
}

func TestParseRejectsBadArguments(t *testing.T) {
	cases := []string{
		"add",
		"add by:2026-03-31",
		"add pay rent by:soon",
		"export xml",
		"energy 6",
		"energy loads",
	}
	for _, in := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("done")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
