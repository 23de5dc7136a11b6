package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Mood   func(MoodArgs) (Result, error)
	Clear  func() (Result, error)
	Add    func(AddArgs) (Result, error)
	Reward func() (Result, error)
	Done   func(ItemArgs) (Result, error)
	Toggle func(ItemArgs) (Result, error)
	Edit   func(EditArgs) (Result, error)
	Remove func(ItemArgs) (Result, error)
	Goto   func(GotoArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeMood:
		if handlers.Mood == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Mood(*cmd.Mood)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeReward:
		if handlers.Reward == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reward()
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Item)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Toggle(*cmd.Item)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Edit)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Remove(*cmd.Item)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goto(*cmd.Goto)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
