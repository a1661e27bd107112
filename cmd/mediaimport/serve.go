package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vmunix/mediaimport/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run discovery and observation until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoops(nil)
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run only the discovery loop",
	Long: `Run only the discovery loop: probe the configured servers, register
sighted ones as providers and deactivate servers that stop answering.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoops(func(c *server.Config) { c.DisableObserver = true })
	},
}

var observeCmd = &cobra.Command{
	Use:   "observe",
	Short: "Run only the observer loop for stored providers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoops(func(c *server.Config) { c.DisableDiscovery = true })
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, discoverCmd, observeCmd)
}

func runLoops(mutate func(*server.Config)) error {
	r, logger, closeDB, err := setup(mutate)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("mediaimport starting", "version", version)
	if err := r.Run(ctx); err != nil {
		return err
	}
	logger.Info("mediaimport stopped")
	return nil
}
