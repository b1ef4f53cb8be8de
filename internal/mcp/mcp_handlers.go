package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/folioscope/folio/core"
	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleAnalyzeArchive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ArchivePath = request.GetString("archive_path", "")
	if cfg.ArchivePath == "" {
		return mcp.NewToolResultError("archive_path is required"), nil
	}
	if p := request.GetString("project_id", ""); p != "" {
		cfg.ProjectID = p
	}
	if m := request.GetString("analysis_mode", ""); m != "" {
		cfg.AnalysisMode = schema.AnalysisMode(m)
	}
	// Outputs always land beside the archive for tool calls.
	cfg.MetadataOutput, cfg.SummaryOutput = "", ""

	doc, _, err := core.GetAnalysisResults(ctx, cfg, h.mgr)
	if err != nil {
		if invalid, ok := contract.AsInvalidArchive(err); ok {
			return mcp.NewToolResultError(invalid.PayloadJSON()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(doc), nil
}

func (h *toolHandler) handleRankProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if u := request.GetString("user", ""); u != "" {
		cfg.User = u
	}
	if a := request.GetString("as_of", ""); a != "" {
		asOf, err := contract.ParseAsOf(a, time.Now())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid ranking parameters: %v", err)), nil
		}
		cfg.AsOf = asOf
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = min(l, contract.MaxResultLimit)
	}

	rankings, _, err := core.GetRankingResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichRankings(rankings)), nil
}

func (h *toolHandler) handleGetLatestSnapshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := request.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("project_id is required"), nil
	}
	if h.mgr == nil || h.mgr.GetSnapshotStore() == nil {
		return mcp.NewToolResultError("snapshot store is not initialized"), nil
	}

	rec, err := h.mgr.GetSnapshotStore().FetchLatest(projectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load snapshot: %v", err)), nil
	}
	if rec == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no snapshot found for project %q", projectID)), nil
	}
	return jsonResult(rec), nil
}

func (h *toolHandler) handleGetSkillTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ProjectID = request.GetString("project_id", "")
	if n := request.GetInt("top", 0); n > 0 {
		cfg.TopN = n
	}

	if cfg.ProjectID != "" {
		report, err := core.GetSkillResults(ctx, cfg, h.mgr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("skill lookup failed: %v", err)), nil
		}
		return jsonResult(report), nil
	}

	rows, err := core.GetSkillTimelineResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("skill timeline failed: %v", err)), nil
	}
	return jsonResult(rows), nil
}

func (h *toolHandler) handleGetTopSummaries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Limit = core.DefaultSummaryLimit
	if u := request.GetString("user", ""); u != "" {
		cfg.User = u
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = min(l, contract.MaxResultLimit)
	}

	summaries, err := core.GetSummaryResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summaries failed: %v", err)), nil
	}
	return jsonResult(summaries), nil
}

func (h *toolHandler) handleMatchJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.JobText = request.GetString("job_text", "")
	if strings.TrimSpace(cfg.JobText) == "" {
		return mcp.NewToolResultError("job_text is required"), nil
	}
	cfg.ProjectID = request.GetString("project_id", "")
	cfg.CompanyName = strings.TrimSpace(request.GetString("company", ""))

	m, err := core.GetMatchResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("job match failed: %v", err)), nil
	}
	return jsonResult(m), nil
}
