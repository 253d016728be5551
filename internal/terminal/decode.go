package terminal

import (
	"context"
	"errors"
	"io"
	"time"
	"unicode/utf8"
)

// ErrQuit is returned by Decoder.Next when the user asked to leave.
var ErrQuit = errors.New("quit")

var errNoByte = errors.New("no byte before timeout")

const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

// DefaultEscapeTimeout is how long an ESC waits for the rest of an escape
// sequence before it counts as the Escape key.
const DefaultEscapeTimeout = 50 * time.Millisecond

type chunk struct {
	data []byte
	err  error
}

// Decoder turns raw terminal bytes into keyboard key names ("7", "Enter",
// "Backspace", "Escape"). Escape sequences such as arrow keys are dropped,
// even when they arrive split across reads.
//
// Input is read by a background goroutine so Next can give up on ctx while a
// read is blocked. Close stops handing data to the decoder; a read already
// blocked in the underlying reader ends when that reader does.
type Decoder struct {
	chunks <-chan chunk
	done   chan struct{}

	buf []byte
	err error

	EscapeTimeout time.Duration
}

func NewDecoder(r io.Reader) *Decoder {
	chunks := make(chan chunk)
	done := make(chan struct{})
	go pump(r, chunks, done)

	return &Decoder{
		chunks:        chunks,
		done:          done,
		EscapeTimeout: DefaultEscapeTimeout,
	}
}

func pump(r io.Reader, chunks chan<- chunk, done <-chan struct{}) {
	for {
		buf := make([]byte, 256)
		n, err := r.Read(buf)
		if n > 0 {
			select {
			case chunks <- chunk{data: buf[:n]}:
			case <-done:
				return
			}
		}
		if err != nil {
			select {
			case chunks <- chunk{err: err}:
			case <-done:
			}
			return
		}
	}
}

// Close releases the reading goroutine once its current read returns.
func (d *Decoder) Close() {
	select {
	case <-d.done:
	default:
		close(d.done)
	}
}

// Next returns the next key name. It returns ErrQuit on q, Ctrl-C or Ctrl-D,
// io.EOF when input ends and ctx.Err() when ctx is done first.
func (d *Decoder) Next(ctx context.Context) (string, error) {
	for {
		b, err := d.readByte(ctx, 0)
		if err != nil {
			return "", err
		}

		switch b {
		case 'q', 'Q', keyCtrlC, keyCtrlD:
			return "", ErrQuit
		case '\r', '\n':
			return "Enter", nil
		case keyBackspace, keyDelete:
			return "Backspace", nil
		case keyEscape:
			next, err := d.readByte(ctx, d.EscapeTimeout)
			if err != nil {
				if ctx.Err() != nil {
					return "", ctx.Err()
				}
				// Timeout or end of input: a lone ESC. A read error stays
				// queued for the following call.
				return "Escape", nil
			}
			if err := d.skipSequence(ctx, next); err != nil && ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}

		if b < 0x20 {
			continue
		}
		if b >= utf8.RuneSelf {
			return d.readRune(ctx, b)
		}
		return string(rune(b)), nil
	}
}

// skipSequence discards the remainder of an escape sequence whose byte after
// ESC is first.
func (d *Decoder) skipSequence(ctx context.Context, first byte) error {
	if first != '[' && first != 'O' {
		// Alt+key: drop the key as well.
		return nil
	}
	for {
		b, err := d.readByte(ctx, d.EscapeTimeout)
		if err != nil {
			return err
		}
		// CSI/SS3 final bytes are in 0x40-0x7e.
		if b >= 0x40 && b <= 0x7e {
			return nil
		}
	}
}

// readRune completes a multi-byte UTF-8 key starting with lead.
func (d *Decoder) readRune(ctx context.Context, lead byte) (string, error) {
	n := 1
	switch {
	case lead >= 0xf0:
		n = 4
	case lead >= 0xe0:
		n = 3
	case lead >= 0xc0:
		n = 2
	}

	p := []byte{lead}
	for len(p) < n {
		b, err := d.readByte(ctx, d.EscapeTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			break
		}
		p = append(p, b)
	}

	r, _ := utf8.DecodeRune(p)
	return string(r), nil
}

// readByte returns the next input byte. A wait > 0 bounds how long it blocks
// for new input. Read errors are sticky.
func (d *Decoder) readByte(ctx context.Context, wait time.Duration) (byte, error) {
	if len(d.buf) == 0 {
		if d.err != nil {
			return 0, d.err
		}

		var timeout <-chan time.Time
		if wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			timeout = t.C
		}

		select {
		case c := <-d.chunks:
			if c.err != nil {
				d.err = c.err
				return 0, c.err
			}
			d.buf = c.data
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timeout:
			return 0, errNoByte
		}
	}

	b := d.buf[0]
	d.buf = d.buf[1:]
	return b, nil
}
