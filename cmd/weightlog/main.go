// Command weightlog keeps a personal weight log in a single JSON document.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"weightlog/internal/adapter/file"
	"weightlog/internal/adapter/memory"
	"weightlog/internal/adapter/postgres"
	"weightlog/internal/app"
	"weightlog/internal/config"
	"weightlog/internal/domain"
	"weightlog/internal/logging"
)

// cli carries the global flags and the backend opened for one invocation.
type cli struct {
	configPath string
	dataPath   string
	backend    string
	logLevel   string

	out io.Writer
	in  io.Reader

	cfg      *config.Config
	repo     domain.DocumentRepository
	sessions domain.SessionRepository
	closers  []func() error
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "weightlog",
		Short:         "Track body weight records, goals and backups",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.SetOut(c.out)
	root.SetIn(c.in)

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $HOME/.weightlogger/config.yaml)")
	pf.StringVar(&c.dataPath, "data", "", "backing JSON file (default $HOME/.weightlogger/data.json)")
	pf.StringVar(&c.backend, "backend", "", "storage backend: file, postgres or memory")
	pf.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		c.recordsCmd(),
		c.profileCmd(),
		c.goalCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.backupCmd(),
		c.statsCmd(),
		c.serveCmd(),
		c.watchCmd(),
		c.schemaCmd(),
		c.authCmd(),
	)
	return root
}

func (c *cli) setup() error {
	path := c.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if c.dataPath != "" {
		cfg.DataPath = c.dataPath
	}
	if c.backend != "" {
		cfg.Backend = c.backend
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := logging.Setup(cfg.Log.Level); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// open connects the configured backend on first use.
func (c *cli) open() (*app.Store, error) {
	if c.repo != nil {
		return app.NewStore(c.repo), nil
	}
	switch c.cfg.Backend {
	case config.BackendPostgres:
		db, err := postgres.Open(c.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		c.closers = append(c.closers, db.Close)
		c.repo, c.sessions = db, postgres.NewSessionRepo(db)
	case config.BackendMemory:
		db := memory.New()
		c.repo, c.sessions = db, db.NewSessionRepo()
	default:
		path, err := c.filePath()
		if err != nil {
			return nil, err
		}
		c.repo, c.sessions = file.New(path), memory.New().NewSessionRepo()
	}
	slog.Debug("backend opened", "backend", c.cfg.Backend)
	return app.NewStore(c.repo), nil
}

func (c *cli) filePath() (string, error) {
	if c.cfg.DataPath != "" {
		return c.cfg.DataPath, nil
	}
	return file.DefaultPath()
}

func (c *cli) close() error {
	var errs []error
	for _, fn := range c.closers {
		errs = append(errs, fn())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *cli) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, string(b))
	return err
}

// execute runs one invocation with args and releases the backend afterwards.
func execute(ctx context.Context, args []string, out io.Writer, in io.Reader) error {
	c := &cli{out: out, in: in}
	root := c.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return errors.Join(err, c.close())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout, os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, "weightlog:", err)
		os.Exit(1)
	}
}
