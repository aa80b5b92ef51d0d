package capability

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"jokeserver/internal/session"
)

// Toggler is the interactive admin client: every stdin line sends a
// toggle and prints the server's confirmation.  "quit" or EOF exits.
type Toggler struct {
	Interactive bool
}

// Handle drives the client side of the admin channel.
func (tg *Toggler) Handle(ctx context.Context, sess *session.Session) error {
	defer closeOnCancel(ctx, sess)()

	in := bufio.NewScanner(sess.Stdin)
	replies := bufio.NewScanner(sess.Conn)
	out := sess.Stdout

	tg.say(out, "Press ENTER to toggle mode. Type 'quit' to exit.\n")
	for in.Scan() {
		if strings.EqualFold(strings.TrimSpace(in.Text()), "quit") {
			tg.say(out, "Exiting admin client...\n")
			return nil
		}
		if _, err := io.WriteString(sess.Conn, "toggle\n"); err != nil {
			return fmt.Errorf("send toggle: %w", err)
		}
		if !replies.Scan() {
			if err := replies.Err(); err != nil {
				return fmt.Errorf("read: %w", err)
			}
			return fmt.Errorf("server closed the connection")
		}
		fmt.Fprintf(out, "Server response: %s\n", replies.Text())
		tg.say(out, "Press ENTER to toggle mode again. Type 'quit' to exit.\n")
	}
	return nil
}

func (tg *Toggler) say(w io.Writer, s string) {
	if tg.Interactive {
		fmt.Fprint(w, s)
	}
}
