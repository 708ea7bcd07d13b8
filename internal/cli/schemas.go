package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/usecase"
)

func schemasCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "schemas",
		Short: "Inspect declarative schema files",
	}

	c.AddCommand(schemasCheckCmd(flags))
	return c
}

func schemasCheckCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the core and catalog schema files exist and are not empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			ws, err := loadWorkspace(workspace, flags)
			if err != nil {
				return err
			}
			defer ws.close()

			checks, cerr := usecase.NewCheckSchemas(ws.schemas).Execute(cmd.Context(), ws.cfg.Schemas)
			if checks == nil && cerr != nil {
				return cerr
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				if err := writeJSON(out, checks); err != nil {
					return err
				}
				return cerr
			}
			for _, c := range checks {
				if c.OK() {
					fmt.Fprintf(out, "%s %-7s %s (%d bytes)\n", styles.OK.Render("✓"), c.Role, c.Path, c.Size)
				} else {
					fmt.Fprintf(out, "%s %-7s %s: %s\n", styles.Fail.Render("✗"), c.Role, c.Path, c.Problem)
				}
			}
			return cerr
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}
