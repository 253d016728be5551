package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		op   Operation
		a, b float64
		want float64
	}{
		{op: OpAdd, a: 2, b: 3, want: 5},
		{op: OpSubtract, a: 2, b: 3, want: -1},
		{op: OpMultiply, a: 2, b: 3, want: 6},
		{op: OpDivide, a: 7, b: 2, want: 3.5},
		{op: OpNone, a: 7, b: 2, want: 2},
	}

	for _, tc := range tests {
		t.Run(tc.op.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, Apply(tc.a, tc.b, tc.op))
		})
	}
}

func TestApplyDivideByZero(t *testing.T) {
	assert.True(t, math.IsInf(Apply(5, 0, OpDivide), 1))
	assert.True(t, math.IsInf(Apply(-5, 0, OpDivide), -1))
	assert.True(t, math.IsNaN(Apply(0, 0, OpDivide)))
}

func TestApplyUnknownOperationPanics(t *testing.T) {
	assert.Panics(t, func() { Apply(1, 2, Operation(42)) })
}

func TestParseOperation(t *testing.T) {
	for sym, want := range map[string]Operation{
		"+": OpAdd, "-": OpSubtract, "×": OpMultiply, "*": OpMultiply, "÷": OpDivide, "/": OpDivide,
	} {
		got, err := ParseOperation(sym)
		require.NoError(t, err, sym)
		assert.Equal(t, want, got, sym)
	}

	for _, sym := range []string{"", "=", "x", "%"} {
		_, err := ParseOperation(sym)
		assert.True(t, errors.Is(err, ErrInvalidOperation), "symbol %q", sym)
	}
}

func TestOperationSymbols(t *testing.T) {
	assert.Equal(t, "", OpNone.Symbol())
	assert.Equal(t, "none", OpNone.String())
	assert.Equal(t, "×", OpMultiply.Symbol())
	assert.Equal(t, "÷", OpDivide.String())
	assert.False(t, OpNone.Binary())
	assert.True(t, OpDivide.Binary())
	assert.False(t, Operation(9).Binary())
}

func TestActionConstructors(t *testing.T) {
	for d := 0; d <= 9; d++ {
		a, err := Digit(d)
		require.NoError(t, err)
		assert.Equal(t, ActionDigit, a.Kind())
	}

	for _, d := range []int{-1, 10} {
		_, err := Digit(d)
		assert.ErrorIs(t, err, ErrInvalidDigit)
	}

	_, err := Operator(OpNone)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	_, err = Operator(Operation(7))
	assert.ErrorIs(t, err, ErrInvalidOperation)

	a, err := Operator(OpSubtract)
	require.NoError(t, err)
	assert.Equal(t, "-", a.String())

	assert.Equal(t, ".", Decimal().String())
	assert.Equal(t, "⌫", DeleteLast().String())
	assert.Equal(t, "AC", Clear().String())
	assert.Equal(t, "=", Evaluate().String())
	assert.Equal(t, "evaluate", Evaluate().Kind().String())
}

func TestActionForKey(t *testing.T) {
	tests := []struct {
		key   string
		label string
	}{
		{key: "0", label: "0"},
		{key: "9", label: "9"},
		{key: ".", label: "."},
		{key: ",", label: "."},
		{key: "+", label: "+"},
		{key: "-", label: "-"},
		{key: "*", label: "×"},
		{key: "/", label: "÷"},
		{key: "×", label: "×"},
		{key: "÷", label: "÷"},
		{key: "=", label: "="},
		{key: "Enter", label: "="},
		{key: "Escape", label: "AC"},
		{key: "c", label: "AC"},
		{key: "C", label: "AC"},
		{key: "Backspace", label: "⌫"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			a, ok := ActionForKey(tc.key)
			require.True(t, ok)
			assert.Equal(t, tc.label, a.String())
		})
	}

	for _, key := range []string{"", "a", "x", "%", "Tab", "ArrowUp", "10"} {
		_, ok := ActionForKey(key)
		assert.False(t, ok, "key %q", key)
	}
}
