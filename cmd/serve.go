package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jokeserver/config"
	"jokeserver/internal/content"
	"jokeserver/internal/core"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the joke server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cfg)
			srv, err := core.BuildServer(cfg, logger)
			if err != nil {
				return err
			}

			if dryRun {
				lib := srv.Client.Session.Library
				fmt.Fprintf(cmd.OutOrStdout(),
					"configuration OK: clients on %s, admin on %s, order %s, %d jokes, %d proverbs\n",
					srv.Client.Address, srv.Admin.Address, srv.Client.Session.Order,
					lib.MustSet(content.Joke).Len(), lib.MustSet(content.Proverb).Len())
				return nil
			}
			return srv.Run(cmd.Context())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&cfg.BindAddress, "bind", cfg.BindAddress, "Address to bind both listeners to (default all interfaces)")
	fs.IntVarP(&cfg.ClientPort, "port", "p", cfg.ClientPort, "Client port")
	fs.IntVar(&cfg.AdminPort, "admin-port", cfg.AdminPort, "Admin port")
	fs.StringVar(&cfg.Order, "order", cfg.Order, "Rotation order within a cycle: shuffle or sequential")
	fs.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "YAML file with 'jokes' and 'proverbs' lists")
	fs.StringVar(&cfg.DefaultName, "default-name", cfg.DefaultName, "Name used for clients that never send one")
	fs.Float64Var(&cfg.Rate, "rate", cfg.Rate, "Max requests per second per client (0 = unlimited)")
	fs.IntVar(&cfg.Burst, "burst", cfg.Burst, "Request burst allowed when --rate is set")
	fs.BoolVar(&dryRun, "dry-run", false, "Validate configuration and exit")

	return cmd
}
