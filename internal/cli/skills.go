package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/usecase"
)

func skillsCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "skills",
		Short: "Inspect skill manifests in a workspace",
	}

	c.AddCommand(skillsListCmd(flags), skillsValidateCmd(flags))
	return c
}

func skillsListCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List skills",
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

			refs, err := usecase.NewListSkills(ws.skills).Execute(cmd.Context(), ws.root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				return writeJSON(out, refs)
			}
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no skills found)")
				return nil
			}

			header(out, ws.root)
			for _, r := range refs {
				agent := r.Agent
				if agent == "" {
					agent = "-"
				}
				fmt.Fprintf(out, "- %s  %s  %s\n", r.Name, styles.Faint.Render("["+agent+"]"), ws.rel(r.Path))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func skillsValidateCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate skill manifests and their entry files",
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

			uc := usecase.NewValidateSkills(ws.skills, usecase.WithLogger(ws.log))
			issues, err := uc.Execute(cmd.Context(), ws.root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				if err := writeJSON(out, issues); err != nil {
					return err
				}
			} else if len(issues) == 0 {
				fmt.Fprintln(out, styles.OK.Render("All skills valid"))
			} else {
				for _, is := range issues {
					fmt.Fprintf(out, "%s %s (%s)\n  %s\n", styles.Fail.Render("✗"), is.Skill, ws.rel(is.Path), is.Message)
				}
			}

			if len(issues) > 0 {
				return fmt.Errorf("validation failed (%d issue(s))", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}
