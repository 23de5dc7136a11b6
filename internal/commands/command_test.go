package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/moodcal/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/mood happy", TypeMood},
		{"/clear", TypeClear},
		{"/add call mom tonight", TypeAdd},
		{"reward", TypeReward},
		{"/done 1", TypeDone},
		{"/toggle 2", TypeToggle},
		{"/edit 3 buy oat milk", TypeEdit},
		{"/rm 4", TypeRemove},
		{"/delete 5", TypeRemove},
		{"/goto 2026-02-09", TypeGoto},
		{"/GOTO today", TypeGoto},
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

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/edit 2   water   the plants ")
	if err != nil {
		t.Fatalf("parse edit: %v", err)
	}
	if cmd.Edit.Index != 2 || cmd.Edit.Content != "water   the plants" {
		t.Fatalf("unexpected edit args: %+v", cmd.Edit)
	}

	cmd, err = Parse("/mood Kissing")
	if err != nil || cmd.Mood.Mood != model.MoodKissing {
		t.Fatalf("unexpected mood parse: %+v err=%v", cmd.Mood, err)
	}

	cmd, err = Parse("/goto today")
	if err != nil || cmd.Goto.Date != "" {
		t.Fatalf("expected empty date for today, got %+v err=%v", cmd.Goto, err)
	}
}

func TestParseRejectsBadArguments(t *testing.T) {
	for _, in := range []string{"/mood", "/mood bored", "/add", "/done", "/done x", "/done 0", "/rm 6", "/edit 1", "/goto 09-02-2026"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownAndEmpty(t *testing.T) {
	var ce *CommandError
	if _, err := Parse("/unknown do x"); !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if _, err := Parse("  / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write journal")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Content != "write journal" {
				t.Fatalf("unexpected content: %q", a.Content)
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
	cmd, err := Parse("/reward")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
