// jokeserver serves jokes and proverbs over TCP, with an admin port
// that switches every client between the two.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jokeserver/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "jokeserver: %v\n", err)
		os.Exit(1)
	}
}
