package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/skillbuilder/internal/config"
	"github.com/jask/skillbuilder/internal/logger"
)

// cli carries what every subcommand needs once the root has run.
type cli struct {
	cfg     config.Config
	log     *logger.Logger
	backend string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "skillbuilder",
		Short:         "Interactive skill builder lessons in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				c.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.backend, "backend", "", "progress backend: sqlite, redis, file, memory or none")

	root.AddCommand(
		newRunCmd(c),
		newRenderCmd(c),
		newProgressCmd(c),
		newSampleCmd(c),
		newConfettiCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.backend != "" {
		cfg.Store.Backend = c.backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	c.cfg = cfg

	// The terminal UI owns stdout and stderr, so it logs to a file.
	path := ""
	if cmd.Name() == "run" {
		path = cfg.Log.Path
	}
	log, err := logger.New(cfg.Log.Mode, path)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	c.log = log
	return nil
}
