package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/infra/fsworkspace"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/infra/logger"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/usecase"
)

func initCmd(flags *rootFlags) *cobra.Command {
	var path string
	var force bool
	var projectRef string
	var schema string

	c := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a skill-manager workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			project := domain.ProjectConfig{ProjectRef: projectRef, DefaultSchema: schema}
			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, project, force); err != nil {
				return err
			}

			cleanup, err := logger.Setup(logger.Config{Root: root, Debug: flags.debug})
			if err == nil {
				logger.L().Info("workspace.initialized",
					zap.String("root", root),
					zap.Bool("force", force),
				)
				_ = cleanup()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", styles.OK.Render("Initialized workspace at"), root)
			fmt.Fprintln(out, styles.Faint.Render("Next: skill-manager skills validate"))
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", ".", "Directory to initialize")
	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing scaffold files")
	c.Flags().StringVar(&projectRef, "project-ref", "", "Supabase project ref written to skill-manager.yaml")
	c.Flags().StringVar(&schema, "schema", "", "Default schema (defaults to public)")
	return c
}
