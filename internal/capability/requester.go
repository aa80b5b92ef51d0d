package capability

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"jokeserver/internal/protocol"
	"jokeserver/internal/session"
)

// Requester is the interactive content client.  Each line on stdin
// asks the server for one item; "quit" (or EOF) ends the session.
type Requester struct {
	// Name is sent as the display name.  When empty the first stdin
	// line is used instead.
	Name string

	// Interactive prints prompts and hints to Stdout.
	Interactive bool
}

// Handle drives the client side of the content channel.
func (q *Requester) Handle(ctx context.Context, sess *session.Session) error {
	defer closeOnCancel(ctx, sess)()

	in := bufio.NewScanner(sess.Stdin)
	out := sess.Stdout
	r := protocol.NewReader(sess.Conn)
	w := protocol.NewWriter(sess.Conn)

	name := strings.TrimSpace(q.Name)
	if name == "" {
		q.say(out, "Enter your name: ")
		if in.Scan() {
			name = strings.TrimSpace(in.Text())
		}
	}
	if name != "" {
		if err := w.WriteFrame(protocol.Hello(name)); err != nil {
			return err
		}
	}

	q.say(out, "Type 'quit' to exit or press Enter to get a joke or a proverb.\n")
	for in.Scan() {
		if strings.EqualFold(strings.TrimSpace(in.Text()), "quit") {
			break
		}
		if err := w.WriteFrame(protocol.Next()); err != nil {
			return err
		}

		f, err := r.ReadFrame()
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("server closed the connection")
			}
			return fmt.Errorf("read: %w", err)
		}
		fmt.Fprintln(out, f.Text)
		q.say(out, "\nType 'quit' to exit or press Enter to get another joke or a proverb.\n")
	}

	// Best effort: the server also treats a plain disconnect as quit.
	w.WriteFrame(protocol.Quit()) //nolint:errcheck
	return nil
}

func (q *Requester) say(w io.Writer, s string) {
	if q.Interactive {
		fmt.Fprint(w, s)
	}
}
