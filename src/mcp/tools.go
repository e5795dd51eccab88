package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names.
const (
	ToolGetWorkflows       = "get_workflows"
	ToolGetWorkflowRuns    = "get_workflow_runs"
	ToolAnalyzeWorkflowRun = "analyze_workflow_run"
	ToolGetJobTimings      = "get_job_timings"
	ToolGetRepositories    = "get_repositories"
)

// stringOrInteger widens a property's JSON Schema type to accept both forms.
func stringOrInteger() mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = []string{"string", "integer"}
	}
}

// registerTools registers all available tools.
func (s *Server) registerTools() {
	owner := mcp.WithString("owner",
		mcp.Required(),
		mcp.Description("GitHub repository owner"),
	)
	repo := mcp.WithString("repo",
		mcp.Required(),
		mcp.Description("GitHub repository name"),
	)
	runID := mcp.WithNumber("run_id",
		mcp.Required(),
		mcp.Description("Workflow run ID"),
	)

	workflowsTool := mcp.NewTool(ToolGetWorkflows,
		mcp.WithDescription("List all workflows in a GitHub repository"),
		mcp.WithReadOnlyHintAnnotation(true),
		owner,
		repo,
	)

	runsTool := mcp.NewTool(ToolGetWorkflowRuns,
		mcp.WithDescription("Get workflow runs for a specific workflow, with optional filtering by status and conclusion"),
		mcp.WithReadOnlyHintAnnotation(true),
		owner,
		repo,
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("Workflow ID (number) or filename (string)"),
			stringOrInteger(),
		),
		mcp.WithString("status",
			mcp.Description("Filter by status"),
			mcp.Enum(statusValues()...),
		),
		mcp.WithString("conclusion",
			mcp.Description("Filter by conclusion"),
			mcp.Enum(conclusionValues()...),
		),
		mcp.WithNumber("per_page",
			mcp.Description("Number of results per page"),
			mcp.Min(1),
			mcp.Max(maxPerPage),
			mcp.DefaultNumber(defaultPerPage),
		),
	)

	analyzeTool := mcp.NewTool(ToolAnalyzeWorkflowRun,
		mcp.WithDescription("Analyze a specific workflow run to identify performance issues and failures"),
		mcp.WithReadOnlyHintAnnotation(true),
		owner,
		repo,
		runID,
	)

	timingsTool := mcp.NewTool(ToolGetJobTimings,
		mcp.WithDescription("Get detailed timing information for jobs in a workflow run"),
		mcp.WithReadOnlyHintAnnotation(true),
		owner,
		repo,
		runID,
	)

	reposTool := mcp.NewTool(ToolGetRepositories,
		mcp.WithDescription("List all repositories for a GitHub username"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("GitHub username"),
		),
	)

	s.mcpServer.AddTool(workflowsTool, s.handleGetWorkflows)
	s.mcpServer.AddTool(runsTool, s.handleGetWorkflowRuns)
	s.mcpServer.AddTool(analyzeTool, s.handleAnalyzeWorkflowRun)
	s.mcpServer.AddTool(timingsTool, s.handleGetJobTimings)
	s.mcpServer.AddTool(reposTool, s.handleGetRepositories)
}

// handleGetWorkflows handles the get_workflows tool call.
func (s *Server) handleGetWorkflows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(request.GetArguments())
	owner, err := a.requireString("owner")
	if err != nil {
		return invalidArgs(err), nil
	}
	repo, err := a.requireString("repo")
	if err != nil {
		return invalidArgs(err), nil
	}

	report, err := s.service.Workflows(ctx, owner, repo)
	if err != nil {
		s.log.Error("%s %s/%s: %v", ToolGetWorkflows, owner, repo, err)
		return errorResult("Error fetching workflows", err), nil
	}
	return jsonResult(report), nil
}

// handleGetWorkflowRuns handles the get_workflow_runs tool call.
func (s *Server) handleGetWorkflowRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := args(request.GetArguments())
	owner, err := a.requireString("owner")
	if err != nil {
		return invalidArgs(err), nil
	}
	repo, err := a.requireString("repo")
	if err != nil {
		return invalidArgs(err), nil
	}
	workflowID, err := a.requireID("workflow_id")
	if err != nil {
		return invalidArgs(err), nil
	}
	filter, err := a.runFilter()
	if err != nil {
		return invalidArgs(err), nil
	}

	report, err := s.service.WorkflowRuns(ctx, owner, repo, workflowID, filter)
	if err != nil {
		s.log.Error("%s %s/%s %s: %v", ToolGetWorkflowRuns, owner, repo, workflowID, err)
		return errorResult("Error fetching workflow runs", err), nil
	}
	return jsonResult(report), nil
}

// handleAnalyzeWorkflowRun handles the analyze_workflow_run tool call.
func (s *Server) handleAnalyzeWorkflowRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := args(request.GetArguments()).runRef()
	if err != nil {
		return invalidArgs(err), nil
	}

	report, err := s.service.AnalyzeRun(ctx, ref)
	if err != nil {
		s.log.Error("%s %s/%s %d: %v", ToolAnalyzeWorkflowRun, ref.Owner, ref.Repo, ref.RunID, err)
		return errorResult("Error analyzing workflow run", err), nil
	}
	return jsonResult(report), nil
}

// handleGetJobTimings handles the get_job_timings tool call.
// Per-job fetch failures are reported inside a successful result.
func (s *Server) handleGetJobTimings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := args(request.GetArguments()).runRef()
	if err != nil {
		return invalidArgs(err), nil
	}

	report, err := s.service.JobTimings(ctx, ref)
	if err != nil {
		s.log.Error("%s %s/%s %d: %v", ToolGetJobTimings, ref.Owner, ref.Repo, ref.RunID, err)
		return errorResult("Error fetching job timings", err), nil
	}
	return jsonResult(report), nil
}

// handleGetRepositories handles the get_repositories tool call.
func (s *Server) handleGetRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := args(request.GetArguments()).requireString("username")
	if err != nil {
		return invalidArgs(err), nil
	}

	report, err := s.service.Repositories(ctx, username)
	if err != nil {
		s.log.Error("%s %s: %v", ToolGetRepositories, username, err)
		return errorResult("Error fetching repositories", err), nil
	}
	return jsonResult(report), nil
}
