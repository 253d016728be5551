package calculator

// Machine owns the single state value of one keypad and applies inputs to it.
// It is not safe for concurrent use.
type Machine struct {
	state State
}

func NewMachine() *Machine {
	return &Machine{state: Initial()}
}

func (m *Machine) Dispatch(a Action) {
	m.state = Transition(m.state, a)
}

func (m *Machine) InputDigit(d int) error {
	a, err := Digit(d)
	if err != nil {
		return err
	}
	m.Dispatch(a)
	return nil
}

func (m *Machine) InputDecimal() { m.Dispatch(Decimal()) }
func (m *Machine) DeleteLast()   { m.Dispatch(DeleteLast()) }
func (m *Machine) Clear()        { m.Dispatch(Clear()) }
func (m *Machine) Evaluate()     { m.Dispatch(Evaluate()) }

func (m *Machine) SelectOperation(op Operation) error {
	a, err := Operator(op)
	if err != nil {
		return err
	}
	m.Dispatch(a)
	return nil
}

// DisplayText returns the text to render after the last input.
func (m *Machine) DisplayText() string {
	return m.state.Display()
}

func (m *Machine) State() State {
	return m.state
}
