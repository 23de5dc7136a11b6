package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/moodcal/internal/model"
)

type Type string

const (
	TypeMood   Type = "mood"
	TypeClear  Type = "clear"
	TypeAdd    Type = "add"
	TypeReward Type = "reward"
	TypeDone   Type = "done"
	TypeToggle Type = "toggle"
	TypeEdit   Type = "edit"
	TypeRemove Type = "rm"
	TypeGoto   Type = "goto"
)

var aliases = map[string]Type{
	"delete": TypeRemove,
	"del":    TypeRemove,
	"go":     TypeGoto,
}

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

type MoodArgs struct {
	Mood model.MoodTag
}

type AddArgs struct {
	Content string
}

// ItemArgs addresses a todo by its 1-based position in the day's list.
type ItemArgs struct {
	Index int
}

type EditArgs struct {
	Index   int
	Content string
}

// GotoArgs carries the target day; Date is empty for "today".
type GotoArgs struct {
	Date string
}

type Command struct {
	Type Type
	Raw  string
	Mood *MoodArgs
	Add  *AddArgs
	Item *ItemArgs
	Edit *EditArgs
	Goto *GotoArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest, _ := strings.Cut(raw, " ")
	head = strings.ToLower(head)
	rest = strings.TrimSpace(rest)
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeMood:
		return parseMood(input, rest)
	case TypeClear, TypeReward:
		return Command{Type: typ, Raw: input}, nil
	case TypeAdd:
		if rest == "" {
			return Command{}, invalid("add requires the todo text")
		}
		return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Content: rest}}, nil
	case TypeDone, TypeToggle, TypeRemove:
		idx, err := parseIndex(string(typ), rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: typ, Raw: input, Item: &ItemArgs{Index: idx}}, nil
	case TypeEdit:
		return parseEdit(input, rest)
	case TypeGoto:
		return parseGoto(input, rest)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseMood(raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, invalid("mood requires a mood tag")
	}
	tag, err := model.ParseMoodTag(rest)
	if err != nil {
		return Command{}, invalid(err.Error())
	}
	return Command{Type: TypeMood, Raw: raw, Mood: &MoodArgs{Mood: tag}}, nil
}

func parseEdit(raw, rest string) (Command, error) {
	num, content, _ := strings.Cut(rest, " ")
	idx, err := parseIndex("edit", num)
	if err != nil {
		return Command{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return Command{}, invalid("edit requires the new todo text")
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Index: idx, Content: content}}, nil
}

func parseGoto(raw, rest string) (Command, error) {
	switch strings.ToLower(rest) {
	case "", "today":
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{}}, nil
	}
	if err := model.ValidateDate(rest); err != nil {
		return Command{}, invalid(err.Error())
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: rest}}, nil
}

func parseIndex(name, arg string) (int, error) {
	if arg == "" {
		return 0, invalid(name + " requires a todo number")
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > model.MaxTodosPerDay {
		return 0, invalid(fmt.Sprintf("todo number must be between 1 and %d", model.MaxTodosPerDay))
	}
	return n, nil
}

func invalid(msg string) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: msg}
}
