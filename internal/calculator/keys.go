package calculator

// ActionForKey maps a keyboard key name or keypad label to its action.
// Keys with no meaning on the keypad report false.
func ActionForKey(key string) (Action, bool) {
	if len(key) == 1 && isDigit(key[0]) {
		return Action{kind: ActionDigit, digit: int(key[0] - '0')}, true
	}

	switch key {
	case ".", ",":
		return Decimal(), true
	case "+", "-", "*", "/", "×", "÷":
		op, _ := ParseOperation(key)
		return Action{kind: ActionOperation, op: op}, true
	case "=", "Enter":
		return Evaluate(), true
	case "Escape", "c", "C", "AC":
		return Clear(), true
	case "Backspace", "⌫":
		return DeleteLast(), true
	}

	return Action{}, false
}
