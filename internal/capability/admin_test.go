package capability

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jokeserver/internal/mode"
	"jokeserver/internal/session"
	"jokeserver/util"
)

func startAdmin(t *testing.T, flag *mode.Flag) (net.Conn, *bufio.Scanner, chan error) {
	t.Helper()
	server, client := net.Pipe()
	sess := session.New(server, session.Config{}, util.NewLogger(0))

	done := make(chan error, 1)
	go func() {
		err := (&AdminGateway{Flag: flag}).Handle(context.Background(), sess)
		sess.Close()
		done <- err
	}()
	t.Cleanup(func() { client.Close() })
	return client, bufio.NewScanner(client), done
}

func command(t *testing.T, conn net.Conn, replies *bufio.Scanner, line string) string {
	t.Helper()
	_, err := fmt.Fprintf(conn, "%s\n", line)
	require.NoError(t, err)
	require.True(t, replies.Scan())
	return replies.Text()
}

// TestAdminGateway_Toggle verifies toggle (any case) flips the mode and
// confirms it.
func TestAdminGateway_Toggle(t *testing.T) {
	flag := mode.New()
	conn, replies, done := startAdmin(t, flag)

	assert.Equal(t, "Server mode changed to: Proverb Mode", command(t, conn, replies, "toggle"))
	assert.Equal(t, mode.Proverb, flag.Load())
	assert.Equal(t, "Server mode changed to: Joke Mode", command(t, conn, replies, "  TOGGLE "))

	_, err := fmt.Fprintln(conn, "quit")
	require.NoError(t, err)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("admin handler did not return")
	}
}

// TestAdminGateway_IgnoresOtherInput verifies unknown commands get no
// reply.
func TestAdminGateway_IgnoresOtherInput(t *testing.T) {
	flag := mode.New()
	conn, replies, _ := startAdmin(t, flag)

	_, err := fmt.Fprintln(conn, "status")
	require.NoError(t, err)
	_, err = fmt.Fprintln(conn, "")
	require.NoError(t, err)

	// The next reply belongs to the toggle, nothing was sent for the rest.
	assert.Equal(t, "Server mode changed to: Proverb Mode", command(t, conn, replies, "toggle"))
}

// TestAdminGateway_Disconnect verifies an admin hang-up is a clean
// return.
func TestAdminGateway_Disconnect(t *testing.T) {
	conn, _, done := startAdmin(t, mode.New())
	conn.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("admin handler did not return")
	}
}

// TestAdminGateway_ConcurrentAdmins verifies concurrent admins never
// lose a toggle.
func TestAdminGateway_ConcurrentAdmins(t *testing.T) {
	flag := mode.New()
	const admins, each = 4, 25

	var wg sync.WaitGroup
	for i := 0; i < admins; i++ {
		conn, replies, _ := startAdmin(t, flag)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				fmt.Fprintln(conn, "toggle") //nolint:errcheck
				if !replies.Scan() {
					t.Error("missing reply")
					return
				}
			}
		}()
	}
	wg.Wait()

	// 100 toggles net to an even number of flips.
	assert.Equal(t, mode.Joke, flag.Load())
}
