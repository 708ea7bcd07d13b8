package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/infra/fsmigrations"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/infra/fsschema"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/infra/logger"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/infra/pgledger"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/infra/redispublisher"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/infra/workspacefinder"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/infra/yamlskills"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config
	log  *zap.Logger

	skills     ports.SkillCatalog
	migrations ports.MigrationSource
	lock       ports.ChecksumLockStore
	schemas    ports.SchemaReader

	closers []func() error
}

// loadWorkspace resolves the workspace, loads its configuration and installs
// the file logger. Callers must defer ws.close().
func loadWorkspace(workspaceFlag string, flags *rootFlags) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	ws := &workspaceCtx{
		root:       root,
		cfg:        cfg,
		log:        zap.NewNop(),
		skills:     yamlskills.NewLoader(yamlskills.WithSkillsDir(cfg.Paths.SkillsDir)),
		migrations: fsmigrations.NewSource(workspacePath(root, cfg.Paths.MigrationsDir)),
		lock:       fsmigrations.NewLockStore(workspacePath(root, cfg.Paths.LockFile)),
		schemas:    fsschema.NewReader(root),
	}

	cleanup, err := logger.Setup(logger.Config{
		Root:  root,
		Level: cfg.Logging.Level,
		Debug: flags != nil && flags.debug,
	})
	if err == nil {
		ws.log = logger.L()
		ws.closers = append(ws.closers, cleanup)
	}

	return ws, nil
}

func (ws *workspaceCtx) close() {
	for i := len(ws.closers) - 1; i >= 0; i-- {
		_ = ws.closers[i]()
	}
	ws.closers = nil
}

// openLedger connects to the database named by database.url_env.
func (ws *workspaceCtx) openLedger(ctx context.Context) (*pgledger.Ledger, error) {
	env := ws.cfg.Database.URLEnv
	url := os.Getenv(env)
	if strings.TrimSpace(url) == "" {
		return nil, &domain.OpError{
			Op:   "cli.database",
			Kind: domain.KindMissingVar,
			Err:  fmt.Errorf("%s is not set: %w", env, domain.ErrMissingVar),
		}
	}

	db, err := pgledger.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	ws.log.Debug("database.connected", zap.String("url", pgledger.RedactURL(url)))
	ws.closers = append(ws.closers, db.Close)
	return pgledger.New(db), nil
}

// openPublisher connects to Redis at publishing.redis_addr.
func (ws *workspaceCtx) openPublisher(ctx context.Context) (*redispublisher.Publisher, error) {
	client, err := redispublisher.NewClient(ctx, redispublisher.Config{
		Address:  ws.cfg.Publishing.RedisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err != nil {
		return nil, &domain.OpError{Op: "cli.redis", Kind: domain.KindExecution, Err: err}
	}
	ws.log.Debug("redis.connected", zap.String("addr", ws.cfg.Publishing.RedisAddr))
	ws.closers = append(ws.closers, client.Close)
	return redispublisher.New(client), nil
}

func (ws *workspaceCtx) rel(path string) string {
	if r, err := filepath.Rel(ws.root, path); err == nil {
		return r
	}
	return path
}

func workspacePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `skill-manager init`): %w", wd, err)
	}
	return root, nil
}
