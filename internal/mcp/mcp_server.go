// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/folioscope/folio/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the folio MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Folio Portfolio Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_archive ---
	s.AddTool(mcp.NewTool("analyze_archive",
		mcp.WithDescription("Analyze a project .zip archive, write its metadata and summary files, and store a snapshot."),
		mcp.WithString("archive_path", mcp.Description("Path to the .zip archive."), mcp.Required()),
		mcp.WithString("project_id", mcp.Description("Project identifier (defaults to the archive name without extension).")),
		mcp.WithString("analysis_mode", mcp.Description("Requested analysis mode. Defaults to 'local'."), mcp.Enum("local", "external", "auto")),
	), h.handleAnalyzeArchive)

	// --- 2. Tool: rank_projects ---
	s.AddTool(mcp.NewTool("rank_projects",
		mcp.WithDescription("Rank stored projects by the latest snapshot of each."),
		mcp.WithString("user", mcp.Description("Contributor whose share of commits scales each score.")),
		mcp.WithString("as_of", mcp.Description("Reference time for recency (RFC3339, date, or 'N days ago').")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankProjects)

	// --- 3. Tool: get_latest_snapshot ---
	s.AddTool(mcp.NewTool("get_latest_snapshot",
		mcp.WithDescription("Fetch the most recent stored snapshot of a project."),
		mcp.WithString("project_id", mcp.Description("Project identifier."), mcp.Required()),
	), h.handleGetLatestSnapshot)

	// --- 4. Tool: get_skill_timeline ---
	s.AddTool(mcp.NewTool("get_skill_timeline",
		mcp.WithDescription("Get skill timelines. With project_id, returns that project's skill report; otherwise the cross-project skill timeline."),
		mcp.WithString("project_id", mcp.Description("Project identifier.")),
		mcp.WithNumber("top", mcp.Description("Skills per year in the per-project report.")),
	), h.handleGetSkillTimeline)

	// --- 5. Tool: get_top_summaries ---
	s.AddTool(mcp.NewTool("get_top_summaries",
		mcp.WithDescription("Summarize the top ranked projects with numbered evidence."),
		mcp.WithString("user", mcp.Description("Contributor whose share of commits scales each score.")),
		mcp.WithNumber("limit", mcp.Description("Number of projects to summarize. Defaults to 3.")),
	), h.handleGetTopSummaries)

	// --- 6. Tool: match_job ---
	s.AddTool(mcp.NewTool("match_job",
		mcp.WithDescription("Compare a job posting with the skills of a stored project and draft a resume snippet."),
		mcp.WithString("job_text", mcp.Description("Full text of the job posting."), mcp.Required()),
		mcp.WithString("project_id", mcp.Description("Project identifier (defaults to the most recently analyzed project).")),
		mcp.WithString("company", mcp.Description("Company name shown with the match.")),
	), h.handleMatchJob)

	return s
}

// StartMCPServer starts the folio MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
