package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Placeholder is printed when skill-manager runs without a subcommand.
const Placeholder = "[skill-manager] Skeleton placeholder. Route to real task handlers."

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type rootFlags struct {
	debug bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "skill-manager",
		Short:        "Manage agent skills and their Supabase workspace",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), Placeholder)
			return err
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable verbose logging to .skill-manager/logs/skill-manager.log")

	cmd.AddCommand(
		versionCmd(),
		initCmd(flags),
		skillsCmd(flags),
		migrationsCmd(flags),
		schemasCmd(flags),
		scriptsCmd(flags),
		publishCmd(flags),
	)
	return cmd
}
