package capability

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"jokeserver/internal/mode"
	"jokeserver/internal/session"
	"jokeserver/util"
)

// AdminReply prefixes the confirmation sent after a toggle.
const AdminReply = "Server mode changed to: "

// AdminGateway handles one admin connection.  The only command is
// "toggle" (case-insensitive); "quit" ends the connection and any
// other line is ignored.
type AdminGateway struct {
	Flag *mode.Flag
}

// Handle reads command lines until quit, EOF or an I/O error.
func (a *AdminGateway) Handle(ctx context.Context, sess *session.Session) error {
	defer closeOnCancel(ctx, sess)()

	sc := bufio.NewScanner(sess.Conn)
	for sc.Scan() {
		cmd := strings.TrimSpace(sc.Text())
		switch {
		case strings.EqualFold(cmd, "toggle"):
			m := a.Flag.Toggle()
			if _, err := fmt.Fprintf(sess.Conn, "%s%s\n", AdminReply, m.Title()); err != nil {
				if util.IsHarmless(err) {
					return nil
				}
				return fmt.Errorf("write: %w", err)
			}
		case strings.EqualFold(cmd, "quit"):
			sess.Logger.Verbose("Admin quit.")
			return nil
		default:
			sess.Logger.Debug("ignoring admin input %q", cmd)
		}
	}

	if err := sc.Err(); err != nil && !util.IsHarmless(err) {
		return fmt.Errorf("read: %w", err)
	}
	sess.Logger.Info("Admin connection closed.")
	return nil
}
