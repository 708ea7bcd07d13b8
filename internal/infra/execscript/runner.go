// Package execscript runs DB script entry points through the system shell.
package execscript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

// waitDelay bounds how long Wait blocks on output pipes held open by
// grandchildren after the shell itself has been killed.
const waitDelay = 2 * time.Second

type Runner struct {
	dir   string
	shell string
}

type Option func(*Runner)

// WithShell overrides the shell used to interpret entry points.
func WithShell(shell string) Option {
	return func(r *Runner) { r.shell = shell }
}

// New returns a runner that executes scripts with dir as working directory.
func New(dir string, opts ...Option) *Runner {
	r := &Runner{dir: dir, shell: "/bin/sh"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.ScriptRunner = (*Runner)(nil)

// RunScript runs `<shell> -c <entry point>`. env is appended to the process
// environment; cancelling ctx kills the script.
func (r *Runner) RunScript(ctx context.Context, script domain.DBScript, env domain.Vars, stdout, stderr io.Writer) error {
	entry := strings.TrimSpace(script.EntryPoint)
	if entry == "" {
		return &domain.OpError{
			Op:   "execscript.run",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("script %q has no entry point", script.Name),
		}
	}

	cmd := exec.CommandContext(ctx, r.shell, "-c", entry)
	cmd.Dir = r.dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(), envList(env)...)
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &domain.OpError{
				Op:   "execscript.run",
				Kind: domain.KindExecution,
				Err:  fmt.Errorf("script %q exited with status %d: %w", script.Name, exitErr.ExitCode(), err),
			}
		}
		return &domain.OpError{
			Op:   "execscript.run",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("script %q: %w", script.Name, err),
		}
	}
	return nil
}

func envList(env domain.Vars) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
