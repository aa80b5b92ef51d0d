package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"jokeserver/config"
	"jokeserver/internal/core"
)

func newClientCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client [host]",
		Short: "Connect to a server and request jokes and proverbs",
		Long: `Connect to a joke server.  Press Enter to get the next item,
type 'quit' to exit.  Without --name the first input line is used as
your name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hostArg(cfg, args)
			m, err := core.BuildClient(cfg, newLogger(cfg), isInteractive(os.Stdin))
			if err != nil {
				return err
			}
			m.Stdin = cmd.InOrStdin()
			m.Stdout = cmd.OutOrStdout()
			return m.Run(cmd.Context())
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&cfg.ClientPort, "port", "p", cfg.ClientPort, "Server client port")
	fs.StringVar(&cfg.Name, "name", cfg.Name, "Display name sent to the server")
	addDialFlags(fs, cfg)
	return cmd
}

func newAdminCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin [host]",
		Short: "Connect to a server's admin port and toggle its mode",
		Long: `Connect to a joke server's admin port.  Press Enter to switch
between Joke Mode and Proverb Mode, type 'quit' to exit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hostArg(cfg, args)
			m, err := core.BuildAdmin(cfg, newLogger(cfg), isInteractive(os.Stdin))
			if err != nil {
				return err
			}
			m.Stdin = cmd.InOrStdin()
			m.Stdout = cmd.OutOrStdout()
			return m.Run(cmd.Context())
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&cfg.AdminPort, "port", "p", cfg.AdminPort, "Server admin port")
	addDialFlags(fs, cfg)
	return cmd
}
