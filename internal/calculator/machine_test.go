package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineCallSurface(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, "0", m.DisplayText())

	require.NoError(t, m.InputDigit(1))
	m.InputDecimal()
	require.NoError(t, m.InputDigit(5))
	assert.Equal(t, "1.5", m.DisplayText())

	require.NoError(t, m.SelectOperation(OpMultiply))
	require.NoError(t, m.InputDigit(4))
	m.Evaluate()
	assert.Equal(t, "6", m.DisplayText())

	m.DeleteLast()
	assert.Equal(t, "0", m.DisplayText())

	require.NoError(t, m.InputDigit(8))
	m.Clear()
	assert.Equal(t, Initial(), m.State())
}

func TestMachineRejectsInvalidInput(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.InputDigit(3))

	assert.ErrorIs(t, m.InputDigit(12), ErrInvalidDigit)
	assert.ErrorIs(t, m.SelectOperation(OpNone), ErrInvalidOperation)
	assert.Equal(t, "3", m.DisplayText())
	assert.Equal(t, OpNone, m.State().Operation())
}
