package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/infra/execscript"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/usecase"
)

func scriptsCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "scripts",
		Short: "List and run configured DB scripts",
	}

	c.AddCommand(scriptsListCmd(flags), scriptsRunCmd(flags))
	return c
}

func scriptsListCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List DB scripts",
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

			out := cmd.OutOrStdout()
			scripts := ws.cfg.Scripts
			if format == "json" {
				return writeJSON(out, scripts)
			}
			if len(scripts) == 0 {
				fmt.Fprintln(out, "(no scripts configured)")
				return nil
			}
			header(out, ws.root)
			for _, s := range scripts {
				fmt.Fprintf(out, "- %s  %s\n", styles.Title.Render(s.Name), s.EntryPoint)
				if s.Description != "" {
					fmt.Fprintf(out, "  %s\n", styles.Faint.Render(s.Description))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func scriptsRunCmd(flags *rootFlags) *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "run <name> [-- args...]",
		Short: "Run a DB script from the workspace root",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace, flags)
			if err != nil {
				return err
			}
			defer ws.close()

			uc := usecase.NewRunScript(execscript.New(ws.root), usecase.WithLogger(ws.log))
			return uc.Execute(cmd.Context(), usecase.ScriptRequest{
				Root:   ws.root,
				Config: ws.cfg,
				Name:   args[0],
				Args:   args[1:],
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}
