package calculator

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys and
// POST /calculator/evaluate. Keys use keyboard names ("7", "*", "Enter",
// "Backspace") or keypad labels ("×", "AC", "⌫").
type KeysRequest struct {
	Keys []string `json:"keys"`
}

// KeyMessage is one client frame on /calculator/ws.
type KeyMessage struct {
	Key string `json:"key"`
}

// StateResponse is the JSON view of a calculator state.
type StateResponse struct {
	SessionID         string  `json:"session_id,omitempty"`
	Display           string  `json:"display"`
	PreviousValue     *string `json:"previous_value"` // rendered text; null when no operation is in progress
	Operation         *string `json:"operation"`      // "+", "-", "×", "÷" or null
	WaitingForOperand bool    `json:"waiting_for_operand"`
	Ignored           int     `json:"ignored,omitempty"` // keys with no keypad meaning
}

// EvaluateStep records the display after one replayed key.
type EvaluateStep struct {
	Key     string `json:"key"`
	Display string `json:"display"`
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	Steps   []EvaluateStep `json:"steps"`
	Display string         `json:"display"`
	Ignored int            `json:"ignored,omitempty"`
}

func newStateResponse(id string, s State) StateResponse {
	resp := StateResponse{
		SessionID:         id,
		Display:           s.Display(),
		WaitingForOperand: s.WaitingForOperand(),
	}
	if v, ok := s.Previous(); ok {
		text := FormatNumber(v)
		resp.PreviousValue = &text
	}
	if op := s.Operation(); op != OpNone {
		sym := op.Symbol()
		resp.Operation = &sym
	}
	return resp
}
