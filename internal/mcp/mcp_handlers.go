package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/satscout/core"
	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/internal/outwriter"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.SchoolsClient
	mgr     contract.HistoryManager
}

func (h *toolHandler) handleListSchools(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Filter = request.GetString("filter", cfg.Filter)
	limit := request.GetInt("limit", cfg.ResultLimit)
	if limit < 0 || limit > contract.MaxResultLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 0 and %d", contract.MaxResultLimit)), nil
	}
	cfg.ResultLimit = limit

	result := core.GetSchoolsResult(core.WithSuppressHeader(ctx), cfg, h.client)

	var buf bytes.Buffer
	if err := outwriter.WriteSchoolsJSON(&buf, result); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (h *toolHandler) handleGetSchoolScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dbn := request.GetString("dbn", "")

	result, err := core.GetScoreResult(ctx, h.client, h.mgr, dbn)
	if errors.Is(err, core.ErrMissingDBN) {
		return mcp.NewToolResultError("dbn is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}

	var buf bytes.Buffer
	if err := outwriter.WriteScoreJSON(&buf, result); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
