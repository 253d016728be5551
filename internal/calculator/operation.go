package calculator

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDigit     = errors.New("digit out of range 0-9")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Operation is a binary arithmetic operation waiting for its right operand.
type Operation uint8

const (
	OpNone Operation = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol returns the on-screen label of the operation, or "" for OpNone.
func (op Operation) Symbol() string {
	switch op {
	case OpNone:
		return ""
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	}
	return fmt.Sprintf("Operation(%d)", uint8(op))
}

func (op Operation) String() string {
	if op == OpNone {
		return "none"
	}
	return op.Symbol()
}

// Binary reports whether op is one of the four selectable operations.
func (op Operation) Binary() bool {
	return op >= OpAdd && op <= OpDivide
}

// ParseOperation accepts the on-screen labels and their ASCII keyboard forms.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSubtract, nil
	case "×", "*":
		return OpMultiply, nil
	case "÷", "/":
		return OpDivide, nil
	}
	return OpNone, fmt.Errorf("%w: %q", ErrInvalidOperation, s)
}

// Apply evaluates a op b with float64 semantics. Division by zero is not
// special-cased. OpNone yields b.
func Apply(a, b float64, op Operation) float64 {
	switch op {
	case OpNone:
		return b
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		return a / b
	}
	panic(fmt.Sprintf("calculator: apply with unknown operation %d", uint8(op)))
}
