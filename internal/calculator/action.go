package calculator

import (
	"fmt"
	"strconv"
)

// ActionKind enumerates the inputs a calculator accepts.
type ActionKind uint8

const (
	ActionDigit ActionKind = iota + 1
	ActionDecimal
	ActionDeleteLast
	ActionClear
	ActionOperation
	ActionEvaluate
)

func (k ActionKind) String() string {
	switch k {
	case ActionDigit:
		return "digit"
	case ActionDecimal:
		return "decimal"
	case ActionDeleteLast:
		return "delete_last"
	case ActionClear:
		return "clear"
	case ActionOperation:
		return "operation"
	case ActionEvaluate:
		return "evaluate"
	}
	return "unknown"
}

// Action is one user input. Build it with the constructors below; the zero
// Action is ignored by Transition.
type Action struct {
	kind  ActionKind
	digit int
	op    Operation
}

func Digit(d int) (Action, error) {
	if d < 0 || d > 9 {
		return Action{}, fmt.Errorf("%w: %d", ErrInvalidDigit, d)
	}
	return Action{kind: ActionDigit, digit: d}, nil
}

func Operator(op Operation) (Action, error) {
	if !op.Binary() {
		return Action{}, fmt.Errorf("%w: %s", ErrInvalidOperation, op)
	}
	return Action{kind: ActionOperation, op: op}, nil
}

func Decimal() Action    { return Action{kind: ActionDecimal} }
func DeleteLast() Action { return Action{kind: ActionDeleteLast} }
func Clear() Action      { return Action{kind: ActionClear} }
func Evaluate() Action   { return Action{kind: ActionEvaluate} }

func (a Action) Kind() ActionKind { return a.kind }

// String returns the keypad label for the action.
func (a Action) String() string {
	switch a.kind {
	case ActionDigit:
		return strconv.Itoa(a.digit)
	case ActionDecimal:
		return "."
	case ActionDeleteLast:
		return "⌫"
	case ActionClear:
		return "AC"
	case ActionOperation:
		return a.op.Symbol()
	case ActionEvaluate:
		return "="
	}
	return ""
}

// Transition derives the state that follows s after a. It never fails.
func Transition(s State, a Action) State {
	switch a.kind {
	case ActionDigit:
		return s.inputDigit(a.digit)
	case ActionDecimal:
		return s.inputDecimal()
	case ActionDeleteLast:
		return s.deleteLast()
	case ActionClear:
		return Initial()
	case ActionOperation:
		return s.selectOperation(a.op)
	case ActionEvaluate:
		return s.evaluate()
	}
	return s
}

// Replay applies actions in order starting from s.
func Replay(s State, actions ...Action) State {
	for _, a := range actions {
		s = Transition(s, a)
	}
	return s
}
