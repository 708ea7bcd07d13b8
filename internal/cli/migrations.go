package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/usecase"
)

func migrationsCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "migrations",
		Short: "Manage Supabase migrations",
	}

	c.AddCommand(
		migrationsListCmd(flags),
		migrationsLockCmd(flags),
		migrationsVerifyCmd(flags),
		migrationsStatusCmd(flags),
		migrationsPushCmd(flags),
	)
	return c
}

func migrationsListCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List local migration files with checksums",
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

			files, err := usecase.NewListMigrations(ws.migrations).Execute(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				return writeJSON(out, files)
			}
			if len(files) == 0 {
				fmt.Fprintln(out, "(no migrations found)")
				return nil
			}
			header(out, ws.root)
			for _, f := range files {
				fmt.Fprintf(out, "- %s  %s\n", f.Name, styles.Faint.Render(shortSum(f.Checksum)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func migrationsLockCmd(flags *rootFlags) *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Record migration checksums in the lock file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace, flags)
			if err != nil {
				return err
			}
			defer ws.close()

			uc := usecase.NewLockMigrations(ws.migrations, ws.lock, usecase.WithLogger(ws.log))
			lock, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Locked %d migration(s) in %s\n", len(lock), ws.rel(workspacePath(ws.root, ws.cfg.Paths.LockFile)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

func migrationsVerifyCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check migration files against the lock file",
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

			results, verr := usecase.NewVerifyMigrations(ws.migrations, ws.lock).Execute(cmd.Context())
			if results == nil && verr != nil {
				return verr
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				if err := writeJSON(out, results); err != nil {
					return err
				}
			} else {
				printChecksums(out, results)
			}
			return verr
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func printChecksums(w io.Writer, results []domain.ChecksumResult) {
	for _, r := range results {
		var mark string
		switch r.Status {
		case domain.ChecksumOK:
			mark = styles.OK.Render("ok      ")
		case domain.ChecksumUnlocked:
			mark = styles.Warn.Render("unlocked")
		default:
			mark = styles.Fail.Render(fmt.Sprintf("%-8s", r.Status))
		}
		fmt.Fprintf(w, "%s  %s\n", mark, r.Name)
		if r.Status == domain.ChecksumDrifted {
			fmt.Fprintf(w, "          locked %s, actual %s\n", shortSum(r.Locked), shortSum(r.Actual))
		}
	}
}

func migrationsStatusCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare local migrations with the remote ledger",
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

			ledger, err := ws.openLedger(cmd.Context())
			if err != nil {
				return err
			}

			states, err := usecase.NewMigrationStatus(ws.migrations, ledger).Execute(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				return writeJSON(out, states)
			}
			conflicts := 0
			for _, s := range states {
				var mark string
				switch s.State {
				case domain.StateApplied:
					mark = styles.OK.Render("applied    ")
				case domain.StatePending:
					mark = styles.Warn.Render("pending    ")
				default:
					conflicts++
					mark = styles.Fail.Render("remote only")
				}
				fmt.Fprintf(out, "%s  %s  %s\n", mark, s.Version, s.Name)
			}
			if conflicts > 0 {
				return &domain.OpError{
					Op:   "migrations.status",
					Kind: domain.KindConflict,
					Err:  fmt.Errorf("%d applied migration(s) have no local file", conflicts),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func migrationsPushCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var dryRun bool
	var includeAll bool
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Apply pending migrations to the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace, flags)
			if err != nil {
				return err
			}
			defer ws.close()

			ledger, err := ws.openLedger(cmd.Context())
			if err != nil {
				return err
			}

			var verify *usecase.VerifyMigrations
			if !skipVerify {
				verify = usecase.NewVerifyMigrations(ws.migrations, ws.lock)
			}

			uc := usecase.NewPushMigrations(ws.migrations, ledger, verify, usecase.WithLogger(ws.log))
			done, err := uc.Execute(cmd.Context(), usecase.PushOptions{DryRun: dryRun, IncludeAll: includeAll})

			out := cmd.OutOrStdout()
			verb := "applied"
			if dryRun {
				verb = "would apply"
			}
			for _, f := range done {
				fmt.Fprintf(out, "%s %s\n", styles.OK.Render(verb), f.Name)
			}
			if err != nil {
				return err
			}
			if len(done) == 0 {
				fmt.Fprintln(out, "Remote database is up to date.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print pending migrations without applying them")
	cmd.Flags().BoolVar(&includeAll, "include-all", false, "Apply pending migrations older than the last applied one")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "Do not check migration checksums against the lock file")
	return cmd
}
