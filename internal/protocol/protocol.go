// Package protocol defines the client channel: newline-delimited JSON
// frames, one object per line.
//
//	{"kind":"hello","name":"Ann"}      client → server, first frame only
//	{"kind":"next"}                    client → server, request an item
//	{"kind":"quit"}                    client → server, end the session
//	{"kind":"item","text":"…","mode":"joke"}  server → client
//
// To stay usable from a plain line-based tool such as netcat, a line
// that does not start with '{' is read as a text frame: "quit" ends the
// session and anything else (including an empty line) is a request.
package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	jserr "jokeserver/internal/errors"
)

// MaxFrameSize bounds a single line on the client channel.
const MaxFrameSize = 64 * 1024

// Kind is the frame discriminator.
type Kind string

const (
	KindHello Kind = "hello"
	KindNext  Kind = "next"
	KindQuit  Kind = "quit"
	KindItem  Kind = "item"
)

// Frame is one message on the client channel.
type Frame struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
	Mode string `json:"mode,omitempty"`
}

// Hello returns a display-name frame.
func Hello(name string) Frame { return Frame{Kind: KindHello, Name: name} }

// Next returns a request frame.
func Next() Frame { return Frame{Kind: KindNext} }

// Quit returns a quit frame.
func Quit() Frame { return Frame{Kind: KindQuit} }

// Item returns a content frame.
func Item(text, mode string) Frame { return Frame{Kind: KindItem, Text: text, Mode: mode} }

// IsHello reports whether f carries a display name.
func (f Frame) IsHello() bool { return strings.EqualFold(string(f.Kind), string(KindHello)) }

// IsQuit reports whether f asks to end the session: either a quit
// frame or a request whose text is "quit".
func (f Frame) IsQuit() bool {
	if strings.EqualFold(string(f.Kind), string(KindQuit)) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(f.Text), "quit") && !f.IsItem()
}

// IsItem reports whether f is a server content frame.
func (f Frame) IsItem() bool { return strings.EqualFold(string(f.Kind), string(KindItem)) }

// ── Reader ───────────────────────────────────────────────────────────

// Reader decodes frames from a stream.
type Reader struct {
	sc *bufio.Scanner
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxFrameSize)
	return &Reader{sc: sc}
}

// ReadFrame blocks until the next frame arrives.  It returns io.EOF
// when the peer closes cleanly and a *errors.ProtocolError for a line
// that cannot be decoded.
func (r *Reader) ReadFrame() (Frame, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			if err == bufio.ErrTooLong {
				return Frame{}, &jserr.ProtocolError{Frame: "(oversized)", Err: err}
			}
			return Frame{}, err
		}
		return Frame{}, io.EOF
	}
	return Decode(r.sc.Bytes())
}

// Decode parses a single line.
func Decode(line []byte) (Frame, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		text := string(trimmed)
		if strings.EqualFold(text, "quit") {
			return Quit(), nil
		}
		return Frame{Kind: KindNext, Text: text}, nil
	}

	var f Frame
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return Frame{}, &jserr.ProtocolError{Frame: truncate(string(trimmed), 64), Err: err}
	}
	return f, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}

// ── Writer ───────────────────────────────────────────────────────────

// Writer encodes frames onto a stream.  It is safe for concurrent use.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// WriteFrame writes f followed by a newline in a single Write call.
func (w *Writer) WriteFrame(f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	data = append(data, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
