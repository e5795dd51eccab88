package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"actions-insight/src/analysis"
	"actions-insight/src/config"
	"actions-insight/src/logger"
	"actions-insight/src/mcp"
	"actions-insight/src/provider"
	"actions-insight/src/tui"
)

// serveCmd runs the MCP server
func (c *cli) serveCmd() *cobra.Command {
	var (
		useHTTP bool
		addr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: `Runs the MCP server over stdio (default) or streamable HTTP.

Over HTTP the MCP endpoint is /mcp and a health check is served at /health.

Example:
  actions-insight serve
  actions-insight serve --http --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := c.service()
			if err != nil {
				return err
			}
			defer release()

			srv := mcp.NewServer(svc, c.log)

			transport := c.cfg.Server.Transport
			if cmd.Flags().Changed("http") {
				transport = config.TransportStdio
				if useHTTP {
					transport = config.TransportHTTP
				}
			}
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.HTTPAddr
			}

			if transport == config.TransportHTTP {
				return srv.ListenAndServe(cmd.Context(), addr)
			}
			return srv.Run()
		},
	}

	cmd.Flags().BoolVar(&useHTTP, "http", false, "Serve streamable HTTP instead of stdio")
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default from config)")
	return cmd
}

func (c *cli) workflowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workflows <owner> <repo>",
		Short: "List the workflows of a repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := c.service()
			if err != nil {
				return err
			}
			defer release()

			report, err := svc.Workflows(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("fetch workflows: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), c.output, report, func() string { return tui.WorkflowsTable(report) })
		},
	}
}

func (c *cli) runsCmd() *cobra.Command {
	var (
		status     string
		conclusion string
		perPage    int
	)

	cmd := &cobra.Command{
		Use:   "runs <owner> <repo> <workflow>",
		Short: "List runs of a workflow",
		Long: `Lists runs of a workflow, identified by its numeric ID or file name.

Example:
  actions-insight runs acme api ci.yml --status completed --conclusion failure`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := runFilter(status, conclusion, perPage)
			if err != nil {
				return err
			}

			svc, release, err := c.service()
			if err != nil {
				return err
			}
			defer release()

			report, err := svc.WorkflowRuns(cmd.Context(), args[0], args[1], args[2], filter)
			if err != nil {
				return fmt.Errorf("fetch workflow runs: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), c.output, report, func() string { return tui.RunsTable(report) })
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (queued, in_progress, completed)")
	cmd.Flags().StringVar(&conclusion, "conclusion", "", "Filter by conclusion (success, failure, cancelled, ...)")
	cmd.Flags().IntVar(&perPage, "per-page", 30, "Number of runs to return (1-100)")
	return cmd
}

func (c *cli) analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <run-url> | <owner> <repo> <run-id>",
		Short: "Analyze a workflow run for performance issues and failures",
		Example: `  actions-insight analyze https://github.com/acme/api/actions/runs/1234567890
  actions-insight analyze acme api 1234567890 -o json`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRunArgs(args)
			if err != nil {
				return err
			}

			svc, release, err := c.service()
			if err != nil {
				return err
			}
			defer release()

			report, err := svc.AnalyzeRun(cmd.Context(), ref)
			if err != nil {
				return fmt.Errorf("analyze workflow run: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), c.output, report, func() string { return tui.AnalysisTable(report) })
		},
	}
}

func (c *cli) timingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timings <run-url> | <owner> <repo> <run-id>",
		Short: "Show step timings for every job of a workflow run",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRunArgs(args)
			if err != nil {
				return err
			}

			svc, release, err := c.service()
			if err != nil {
				return err
			}
			defer release()

			report, err := svc.JobTimings(cmd.Context(), ref)
			if err != nil {
				return fmt.Errorf("fetch job timings: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), c.output, report, func() string { return tui.TimingsTable(report) })
		},
	}
}

func (c *cli) reposCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repos <username>",
		Short: "List the public repositories of a GitHub user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := c.service()
			if err != nil {
				return err
			}
			defer release()

			report, err := svc.Repositories(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch repositories: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), c.output, report, func() string { return tui.RepositoriesTable(report) })
		},
	}
}

// viewCmd launches the interactive timings browser
func (c *cli) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <run-url> | <owner> <repo> <run-id>",
		Short: "Browse a run's job and step timings in an interactive TUI",
		Long: `Fetches the job timings of a run and opens them in a terminal UI.

Keys: j/k or arrows to move, Enter to open a job's steps, Esc to go back,
r to refresh, q to quit.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRunArgs(args)
			if err != nil {
				return err
			}

			// Log output would draw over the TUI
			c.log = logger.NewSilentLogger()
			svc, release, err := c.service()
			if err != nil {
				return err
			}
			defer release()

			ctx := cmd.Context()
			title := fmt.Sprintf("%s/%s run %d", ref.Owner, ref.Repo, ref.RunID)
			return tui.Run(title, func() (*analysis.TimingReport, error) {
				return svc.JobTimings(ctx, ref)
			})
		},
	}
}

// runFilter validates the runs command flags.
func runFilter(status, conclusion string, perPage int) (provider.RunFilter, error) {
	if status != "" && !slices.Contains(provider.Statuses, provider.Status(status)) {
		return provider.RunFilter{}, fmt.Errorf("invalid status %q: want one of %v", status, provider.Statuses)
	}
	if conclusion != "" && !slices.Contains(provider.Conclusions, provider.Conclusion(conclusion)) {
		return provider.RunFilter{}, fmt.Errorf("invalid conclusion %q: want one of %v", conclusion, provider.Conclusions)
	}
	if perPage < 1 || perPage > 100 {
		return provider.RunFilter{}, fmt.Errorf("--per-page must be between 1 and 100, got %d", perPage)
	}
	return provider.RunFilter{
		Status:     provider.Status(status),
		Conclusion: provider.Conclusion(conclusion),
		PerPage:    perPage,
	}, nil
}
