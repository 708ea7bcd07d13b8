package ports

import (
	"context"
	"io"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
)

// ScriptRunner executes a resolved DB script entry point.
type ScriptRunner interface {
	RunScript(ctx context.Context, script domain.DBScript, env domain.Vars, stdout, stderr io.Writer) error
}
