package calculator

import (
	"math"
	"strings"
	"unicode/utf8"
)

// State is one snapshot of the calculator. The zero value is not the
// initial state; use Initial.
type State struct {
	display     string
	previous    float64
	hasPrevious bool
	operation   Operation
	waiting     bool
}

// Initial returns the state shown after power-on or clear.
func Initial() State {
	return State{display: "0"}
}

// Display returns the text currently shown.
func (s State) Display() string {
	if s.display == "" {
		return "0"
	}
	return s.display
}

// Previous returns the pending left operand, if any.
func (s State) Previous() (float64, bool) {
	return s.previous, s.hasPrevious
}

// Operation returns the pending operation, OpNone when nothing is pending.
func (s State) Operation() Operation {
	return s.operation
}

// WaitingForOperand reports whether the next digit starts a fresh operand.
func (s State) WaitingForOperand() bool {
	return s.waiting
}

func (s State) inputDigit(d int) State {
	digit := string(rune('0' + d))
	if s.waiting {
		s.display = digit
		s.waiting = false
		return s
	}
	if s.Display() == "0" {
		s.display = digit
	} else {
		s.display = s.Display() + digit
	}
	return s
}

func (s State) inputDecimal() State {
	if s.waiting {
		s.display = "0."
		s.waiting = false
		return s
	}
	if !strings.Contains(s.Display(), ".") {
		s.display = s.Display() + "."
	}
	return s
}

func (s State) deleteLast() State {
	d := s.Display()
	_, size := utf8.DecodeLastRuneInString(d)
	d = d[:len(d)-size]
	if d == "" {
		d = "0"
	}
	s.display = d
	return s
}

func (s State) selectOperation(op Operation) State {
	input := ParseDisplay(s.Display())

	if !s.hasPrevious {
		s.previous = input
		s.hasPrevious = true
	} else if s.operation != OpNone {
		v := Apply(falsyToZero(s.previous), input, s.operation)
		s.display = FormatNumber(v)
		s.previous = v
	}

	s.waiting = true
	s.operation = op
	return s
}

func (s State) evaluate() State {
	if !s.hasPrevious || s.operation == OpNone {
		return s
	}

	v := Apply(s.previous, ParseDisplay(s.Display()), s.operation)
	return State{
		display: FormatNumber(v),
		waiting: true,
	}
}

// falsyToZero reads a stored 0 or NaN left operand as 0 when chaining,
// matching the reference keypad.
func falsyToZero(v float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
