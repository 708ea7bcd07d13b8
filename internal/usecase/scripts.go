package usecase

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

// ScriptRequest identifies a configured script and extra arguments.
type ScriptRequest struct {
	Root   string
	Config domain.Config
	Name   string
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

type RunScript struct {
	runner   ports.ScriptRunner
	resolver *domain.VarResolver
	log      *zap.Logger
}

func NewRunScript(runner ports.ScriptRunner, opts ...Option) *RunScript {
	o := applyOptions(opts)
	return &RunScript{
		runner:   runner,
		resolver: domain.NewVarResolver(domain.WithNow(o.now), domain.WithUUID(o.newID)),
		log:      o.log,
	}
}

// Execute resolves {{var}} placeholders in the entry point and arguments
// against the workspace configuration and runs the script.
func (uc *RunScript) Execute(ctx context.Context, req ScriptRequest) error {
	script, err := domain.FindScript(req.Config.Scripts, req.Name)
	if err != nil {
		return err
	}

	vars := domain.ProjectVars(req.Root, req.Config)
	session := uc.resolver.NewSession(vars)

	entry, err := session.ResolveString(script.EntryPoint)
	if err != nil {
		return err
	}
	args, err := session.ResolveAll(req.Args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		quoted := make([]string, len(args))
		for i, a := range args {
			quoted[i] = shellQuote(a)
		}
		entry = entry + " " + strings.Join(quoted, " ")
	}

	resolved := script
	resolved.EntryPoint = entry

	env := make(domain.Vars, len(vars))
	for k, v := range vars {
		env[strings.ToUpper(k)] = v
	}

	uc.log.Info("script.start", zap.String("name", script.Name), zap.String("entry", entry))
	if err := uc.runner.RunScript(ctx, resolved, env, req.Stdout, req.Stderr); err != nil {
		uc.log.Error("script.failed", zap.String("name", script.Name), zap.Error(err))
		return err
	}
	uc.log.Info("script.done", zap.String("name", script.Name))
	return nil
}

func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./=:,@", r))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
