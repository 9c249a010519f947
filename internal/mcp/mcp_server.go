// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/satscout/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the SATScout MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.SchoolsClient, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"SATScout School Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
	}

	// --- 1. Tool: list_schools ---
	s.AddTool(mcp.NewTool("list_schools",
		mcp.WithDescription("List NYC high schools from the public school directory, sorted by name."),
		mcp.WithString("filter", mcp.Description("Case-insensitive substring matched against the school name or DBN.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of schools returned.")),
	), h.handleListSchools)

	// --- 2. Tool: get_school_scores ---
	s.AddTool(mcp.NewTool("get_school_scores",
		mcp.WithDescription("Get the average SAT scores and their Low/Medium/High tiers for one school."),
		mcp.WithString("dbn", mcp.Description("The school's DBN identifier (e.g. 01M292)."), mcp.Required()),
	), h.handleGetSchoolScores)

	return s
}

// StartMCPServer starts the SATScout MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.SchoolsClient, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, client, mgr)
	return server.ServeStdio(s)
}
