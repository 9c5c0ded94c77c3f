package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hotprospects/hotprospects/internal/config"
	"github.com/hotprospects/hotprospects/internal/database"
	"github.com/hotprospects/hotprospects/internal/database/repository"
	"github.com/hotprospects/hotprospects/internal/logging"
	"github.com/hotprospects/hotprospects/internal/service"
)

// app is the dependency graph shared by every subcommand.
type app struct {
	cfg         config.Config
	log         *logrus.Logger
	logCloser   io.Closer
	db          *sqlx.DB
	repo        *repository.ProspectRepo
	prospects   *service.ProspectService
	maintenance *service.MaintenanceService
}

var (
	configPath string
	appCtx     *app
)

func Execute() error {
	err := execute(context.Background(), os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

// execute runs the CLI with args. Resources opened by setup are released
// whether or not the command succeeds.
func execute(ctx context.Context, args []string) error {
	appCtx = nil
	root := newRootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := appCtx.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hotprospects",
		Short:         "Keep track of the people you meet",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(configPath)
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/hotprospects/config.toml)")

	root.AddCommand(
		tuiCmd(), addCmd(), listCmd(), deleteCmd(), contactCmd(), meCmd(),
		readingsCmd(), remindCmd(), serveCmd(), seedCmd(), resetCmd(), configCmd(),
	)
	return root
}

func setup(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}

	if version, dirty, err := database.SchemaVersion(cfg.Database.Path); err != nil {
		log.WithError(err).Warn("read schema version")
	} else {
		log.WithFields(logrus.Fields{"db": cfg.Database.Path, "schema": version, "dirty": dirty}).Debug("database ready")
	}

	repo := repository.NewProspectRepo(db)
	return &app{
		cfg:         cfg,
		log:         log,
		logCloser:   closer,
		db:          db,
		repo:        repo,
		prospects:   &service.ProspectService{Prospects: repo, Log: log},
		maintenance: &service.MaintenanceService{DB: db, Prospects: repo, Log: log},
	}, nil
}

func (a *app) close() error {
	if a == nil {
		return nil
	}
	err := a.db.Close()
	if cerr := a.logCloser.Close(); err == nil {
		err = cerr
	}
	return err
}
