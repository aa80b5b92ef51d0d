// Package cmd wires up the CLI and dispatches to the core modes.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"jokeserver/config"
	"jokeserver/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X jokeserver/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the selected subcommand.
//
// Precedence: CLI flags > JOKESERVER_* environment > defaults.  The
// environment is loaded first so that flag defaults already reflect it.
func Execute(ctx context.Context, args []string) error {
	cfg := config.Defaults()
	if err := config.LoadFromEnv(&cfg); err != nil {
		return err
	}

	root := newRootCmd(&cfg)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "jokeserver",
		Short: "Joke and proverb server with an admin mode switch",
		Long: `jokeserver serves jokes and proverbs over TCP.

Clients connect on one port and receive one item per request, never
repeating within a cycle.  An admin connection on a second port flips
every client between Joke Mode and Proverb Mode.`,
		Example: `  jokeserver serve                      Serve on 4545 (clients) and 4546 (admin)
  jokeserver serve --order sequential   Serve items in file order
  jokeserver client                     Connect to localhost:4545
  jokeserver admin server.lan           Toggle the mode on server.lan`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if quiet {
				cfg.Verbose = 0
			}
		},
	}
	cmd.SetVersionTemplate("jokeserver {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Only print errors")
	pf.BoolVar(&cfg.Timestamps, "timestamps", cfg.Timestamps, "Prefix log lines with the time of day")

	cmd.AddCommand(newServeCmd(cfg))
	cmd.AddCommand(newClientCmd(cfg))
	cmd.AddCommand(newAdminCmd(cfg))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jokeserver %s\n", version)
		},
	}
}

// ── helpers ──────────────────────────────────────────────────────────

// addDialFlags registers the flags shared by client and admin.
func addDialFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "Timeout for a single connection attempt")
	fs.IntVar(&cfg.Retries, "retries", cfg.Retries, "Retries when the server refuses the connection")
}

// hostArg applies the optional positional server name.
func hostArg(cfg *config.Config, args []string) {
	if len(args) > 0 {
		cfg.Host = args[0]
	}
}

// isInteractive reports whether r is a terminal, in which case the
// clients print prompts and hints.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newLogger(cfg *config.Config) *util.Logger {
	logger := util.NewLogger(cfg.Verbose)
	if cfg.Timestamps {
		logger.SetTimestamps(true)
	}
	return logger
}
