package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Fuabioo/dehash/internal/core"
	"github.com/Fuabioo/dehash/internal/errors"
	"github.com/mark3labs/mcp-go/mcp"
)

// handleProcess implements dehash_process: cleans one archive or a directory of archives.
func (s *Server) handleProcess(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResult("INVALID_PARAMS", "path is required"), nil
	}

	cfg := *s.cfg
	if prefix := request.GetString("prefix", ""); prefix != "" {
		cfg.Output.Prefix = prefix
	}
	if request.GetBool("force", false) {
		cfg.Output.Overwrite = true
	}
	if err := cfg.Validate(); err != nil {
		return errorResult("INVALID_PARAMS", err.Error()), nil
	}

	archives, err := core.CollectArchives([]string{path}, cfg.Output.Prefix)
	if err != nil {
		return errorResult("INTERNAL_ERROR", err.Error()), nil
	}

	items := core.ProcessAll(archives, &cfg, core.WithLogger(s.logger))

	// A single archive reports its failure directly.
	if len(items) == 1 && items[0].Err != nil {
		return mcpErrorResult(items[0].Err), nil
	}

	return jsonResult(core.NewManifest(items, time.Now())), nil
}

// handleScan implements dehash_scan: reports planned renames without extracting.
func (s *Server) handleScan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResult("INVALID_PARAMS", "path is required"), nil
	}

	mapping, err := core.Plan(path, s.cfg)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	response := map[string]interface{}{
		"archive": path,
		"output":  core.OutputPath(path, s.cfg.Output.Prefix),
		"count":   mapping.Len(),
		"renames": mapping.Records(),
	}

	return jsonResult(response), nil
}

// mcpErrorResult converts a dehash error to an MCP error result.
func mcpErrorResult(err error) *mcp.CallToolResult {
	code := errors.Code(err)
	if code == "" {
		code = "INTERNAL_ERROR"
	}

	return errorResult(code, err.Error())
}

// errorResult creates an MCP error result.
func errorResult(code, message string) *mcp.CallToolResult {
	errorData := map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}

	jsonBytes, err := json.Marshal(errorData)
	if err != nil {
		// Fallback to simple text
		return mcp.NewToolResultText(fmt.Sprintf("Error: %s - %s", code, message))
	}

	return mcp.NewToolResultText(string(jsonBytes))
}

// jsonResult creates an MCP success result from a JSON-serializable object.
func jsonResult(data interface{}) *mcp.CallToolResult {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return errorResult("INTERNAL_ERROR", fmt.Sprintf("failed to marshal response: %s", err))
	}

	return mcp.NewToolResultText(string(jsonBytes))
}
