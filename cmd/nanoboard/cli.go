package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/arthur-debert/nanoboard/internal/config"
	"github.com/arthur-debert/nanoboard/nanoboard/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// CLI wires configuration, logging and the board store into the cobra
// command tree.
type CLI struct {
	rootCmd  *cobra.Command
	cfg      *config.Config
	logger   *slog.Logger
	logFile  io.Closer
	store    *store.Store
	registry *prometheus.Registry

	out    io.Writer
	errOut io.Writer

	format  string
	verbose bool
}

// NewCLI creates the command tree writing to out and errOut.
func NewCLI(out, errOut io.Writer) *CLI {
	cli := &CLI{
		out:      out,
		errOut:   errOut,
		logger:   slog.New(slog.DiscardHandler),
		registry: prometheus.NewRegistry(),
	}
	cli.createRootCommand()
	cli.addCommands()
	return cli
}

func (c *CLI) createRootCommand() {
	c.rootCmd = &cobra.Command{
		Use:   "nanoboard",
		Short: "Kanban boards in your terminal",
		Long: `nanoboard keeps boards, lists and cards in a single storage slot and
lets you edit them from the command line or over HTTP.

Boards, lists and cards are referenced by id or by their (case-insensitive)
title when it is unique. Positions are 1-based.

Configuration sources (in order of precedence):
  1. Command line flags
  2. Environment variables (NANOBOARD_*, e.g. NANOBOARD_STORAGE_BACKEND)
  3. Configuration file (NANOBOARD_CONFIG, ./nanoboard.yaml, ~/.nanoboard/nanoboard.yaml)

Examples:
  nanoboard board add "Roadmap"
  nanoboard list add Roadmap "Todo"
  nanoboard card add Roadmap Todo "Write docs"
  nanoboard card mv Roadmap "Write docs" --to Done
  nanoboard serve --addr :3001`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := c.rootCmd.PersistentFlags()
	flags.String("backend", "", "storage backend: memory|file|sqlite (default file)")
	flags.String("data-dir", "", "directory holding the storage slot (default ~/.nanoboard)")
	flags.String("slot", "", "storage slot name (default board-storage)")
	flags.Duration("debounce", 0, "coalesce writes for this long")
	flags.String("user-id", "", "id recorded on activities and comments")
	flags.String("user-name", "", "name recorded on activities and comments")
	flags.Bool("seed", false, "start an empty slot with the welcome board")
	flags.String("log-level", "", "log level: debug|info|warn|error")
	flags.StringVarP(&c.format, "format", "f", "text", "output format: text|json|yaml")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "also log to stderr")
}

func (c *CLI) addCommands() {
	c.rootCmd.AddCommand(
		c.boardCommand(),
		c.listCommand(),
		c.cardCommand(),
		c.commentCommand(),
		c.searchCommand(),
		c.exportCommand(),
		c.serveCommand(),
		c.configCommand(),
	)
}

// setup resolves configuration and logging before any command runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	v, err := config.New(cmd.Flags())
	if err != nil {
		return NewConfigError("load configuration", err, "Check the file named by NANOBOARD_CONFIG")
	}
	cfg, err := config.Load(v)
	if err != nil {
		return NewConfigError("load configuration", err)
	}
	c.cfg = cfg

	logger, logFile, err := initLogging(cfg.Log.Level, c.verbose, c.errOut)
	if err != nil {
		return err
	}
	c.logger = logger
	c.logFile = logFile
	c.logger.Debug("configuration loaded", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "slot", cfg.Storage.Slot)
	return nil
}

// Execute runs the command line args and releases the store and log file.
func (c *CLI) Execute(args []string) error {
	c.rootCmd.SetArgs(args)
	c.rootCmd.SetOut(c.out)
	c.rootCmd.SetErr(c.errOut)
	err := c.rootCmd.Execute()
	return errors.Join(err, c.close())
}

func (c *CLI) close() error {
	var errs []error
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			errs = append(errs, NewStoreError("save boards", err))
		}
		c.store = nil
	}
	if c.logFile != nil {
		errs = append(errs, c.logFile.Close())
		c.logFile = nil
	}
	return errors.Join(errs...)
}
