package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openrc-ng/rcupdate/internal/cli"
	"github.com/openrc-ng/rcupdate/internal/update"
)

var rootCmd = &cobra.Command{
	Use:   "rcupdate [-a | -d | -s] [service] [runlevel ...]",
	Short: "Add and remove services to and from runlevels",
	Long: `rcupdate assigns services to runlevels: named sets of services that
should be active together. Membership lives in a pluggable service
registry; rcupdate adds a service to one or more runlevels, removes it,
or shows the full membership table.

The legacy verbs add, delete (alias del) and show are accepted in place
of the action flags.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cli.Flags{}
		flags.Add, _ = cmd.Flags().GetBool("add")
		flags.Delete, _ = cmd.Flags().GetBool("delete")
		flags.Show, _ = cmd.Flags().GetBool("show")

		opts := cli.Options{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Watch, _ = cmd.Flags().GetBool("watch")

		return cli.Run(cmd.Context(), flags, args, opts)
	},
}

// Execute runs the root command and maps the result onto the process exit
// status. Mutation failures have already been reported line by line, so
// only unreported errors get printed here.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		switch {
		case errors.Is(err, cli.ErrUsage):
			_ = rootCmd.Usage()
		case errors.Is(err, update.ErrFailed):
			// Per-runlevel diagnostics were emitted during the batch.
		default:
			fmt.Fprintf(os.Stderr, "rcupdate: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("add", "a", false, "Add the service to the runlevels")
	rootCmd.Flags().BoolP("delete", "d", false, "Delete the service from the runlevels")
	rootCmd.Flags().BoolP("show", "s", false, "Show services in the runlevels")
	rootCmd.Flags().BoolP("watch", "w", false, "With show, re-render when the registry changes")

	rootCmd.PersistentFlags().String("config", "", "Path to the rcupdate config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
