// Package main provides the actions-insight CLI. It runs the MCP server
// and exposes the same GitHub Actions queries as one-shot commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"actions-insight/src/config"
	_ "actions-insight/src/githubactions" // Import for provider registration
	"actions-insight/src/insights"
	"actions-insight/src/logger"
	"actions-insight/src/provider"
)

// cli holds state shared by every command of one invocation.
type cli struct {
	configPath string
	output     string

	cfg *config.Config
	log logger.Logger

	// newService is swapped in tests.
	newService func(cfg *config.Config, log logger.Logger) (*insights.Service, func() error, error)
}

func newRootCmd() *cobra.Command {
	c := &cli{newService: insights.NewServiceFromConfig}

	rootCmd := &cobra.Command{
		Use:   "actions-insight",
		Short: "Timing and failure diagnostics for GitHub Actions workflow runs",
		Long: `actions-insight queries the GitHub Actions REST API and turns workflow runs
into timing and failure reports.

It runs as a Model Context Protocol server (stdio or streamable HTTP) exposing
the get_workflows, get_workflow_runs, analyze_workflow_run, get_job_timings and
get_repositories tools, and offers the same queries as CLI commands.

Configuration is read from an optional TOML file, a .env file and the
environment (GITHUB_TOKEN, GITHUB_API_URL, ACTIONS_INSIGHT_*).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVarP(&c.output, "output", "o", formatTable, "Output format: json, yaml or table")

	rootCmd.AddCommand(
		c.serveCmd(),
		c.workflowsCmd(),
		c.runsCmd(),
		c.analyzeCmd(),
		c.timingsCmd(),
		c.reposCmd(),
		c.viewCmd(),
	)

	return rootCmd
}

// setup loads .env, the config file and the environment, then builds the logger.
func (c *cli) setup() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := validateFormat(c.output); err != nil {
		return err
	}

	log, err := logger.NewZapLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.log = log
	return nil
}

// service builds the insights service. The returned function releases it.
func (c *cli) service() (*insights.Service, func(), error) {
	svc, closeFn, err := c.newService(c.cfg, c.log)
	if err != nil {
		return nil, nil, err
	}
	return svc, func() {
		if err := closeFn(); err != nil {
			c.log.Error("close event publisher: %v", err)
		}
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", provider.WrapError(err))
		os.Exit(1)
	}
}
