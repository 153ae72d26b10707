package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Done    func() (Result, error)
	Defer   func() (Result, error)
	Promote func(PromoteArgs) (Result, error)
	Panic   func() (Result, error)
	Export  func(ExportArgs) (Result, error)
	Energy  func(EnergyArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd, TypeLater:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done()
	case TypeDefer:
		if handlers.Defer == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "defer handler not configured"}
		}
		return handlers.Defer()
	case TypePromote:
		if handlers.Promote == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "promote handler not configured"}
		}
		return handlers.Promote(*cmd.Promote)
	case TypePanic:
		if handlers.Panic == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "panic handler not configured"}
		}
		return handlers.Panic()
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "export handler not configured"}
		}
		return handlers.Export(*cmd.Export)
	case TypeEnergy:
		if handlers.Energy == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "energy handler not configured"}
		}
		return handlers.Energy(*cmd.Energy)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
