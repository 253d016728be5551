package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go-chi-calculator/internal/calculator"

	"go.uber.org/zap"
)

const banner = "calculator: digits . + - * / = Enter, Backspace, c/Esc clears, q quits\r\n"

// Run drives one keypad from in until the user quits, input ends or ctx is
// done, redrawing the display line on out after every key.
func Run(ctx context.Context, in io.Reader, out io.Writer, logger *zap.Logger) error {
	m := calculator.NewMachine()
	dec := NewDecoder(in)
	defer dec.Close()

	if _, err := io.WriteString(out, banner); err != nil {
		return err
	}
	if err := render(out, m.DisplayText()); err != nil {
		return err
	}

	for {
		key, err := dec.Next(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			_, _ = io.WriteString(out, "\r\n")
			return ctxErr
		}
		if errors.Is(err, ErrQuit) || errors.Is(err, io.EOF) {
			_, err = io.WriteString(out, "\r\n")
			return err
		}
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		a, ok := calculator.ActionForKey(key)
		if !ok {
			logger.Debug("key ignored", zap.String("key", key))
			continue
		}

		m.Dispatch(a)
		logger.Debug("key applied",
			zap.String("key", key),
			zap.String("action", a.Kind().String()),
			zap.String("display", m.DisplayText()),
		)

		if err := render(out, m.DisplayText()); err != nil {
			return err
		}
	}
}

// render clears the current line and prints the display right-aligned.
func render(out io.Writer, display string) error {
	_, err := fmt.Fprintf(out, "\r\x1b[2K%20s", display)
	return err
}
