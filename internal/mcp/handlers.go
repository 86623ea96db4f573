// ABOUTME: MCP tool handler implementations for the keepsake server
// ABOUTME: Thin adapters from tool arguments to Engine operations
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rowan/keepsake/internal/core"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine      *core.Engine
	defaultUser string
}

// user resolves the user_id argument, falling back to the configured default.
func (h *Handlers) user(request mcp.CallToolRequest) string {
	if id := request.GetString("user_id", ""); id != "" {
		return id
	}
	return h.defaultUser
}

// AnswerQuestion handles the answer_question tool
func (h *Handlers) AnswerQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer := h.engine.AnswerQuestion(question, h.user(request))

	return marshalResult(answer)
}

// RecordMessage handles the record_message tool
func (h *Handlers) RecordMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	result, err := h.engine.RecordMessage(message, h.user(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record message: %v", err)), nil
	}

	return marshalResult(result)
}

// IngestTurn handles the ingest_turn tool
func (h *Handlers) IngestTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	response, err := request.RequireString("response")
	if err != nil {
		return mcp.NewToolResultError("response argument is required and must be a string"), nil
	}

	result, err := h.engine.IngestFacts(message, response, h.user(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to ingest turn: %v", err)), nil
	}

	return marshalResult(result)
}

// CorrectFact handles the correct_fact tool
func (h *Handlers) CorrectFact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	attribute, err := request.RequireString("attribute")
	if err != nil {
		return mcp.NewToolResultError("attribute argument is required and must be a string"), nil
	}

	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value argument is required and must be a string"), nil
	}

	subject := request.GetString("subject", "")

	correction, err := h.engine.CorrectFact(attribute, value, h.user(request), subject)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("correction failed: %v", err)), nil
	}

	return marshalResult(map[string]interface{}{
		"subject":   correction.Subject,
		"attribute": correction.Attribute,
		"old_value": correction.OldValue,
		"new_value": correction.NewValue,
	})
}

// SearchFacts handles the search_facts tool
func (h *Handlers) SearchFacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 10)

	results, err := h.engine.SearchFacts(query, h.user(request), maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	facts := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		facts = append(facts, map[string]interface{}{
			"subject":    r.Fact.Subject,
			"attribute":  r.Fact.Attribute,
			"value":      r.Fact.Value,
			"confidence": r.Fact.Confidence,
			"similarity": r.Similarity,
		})
	}

	return marshalResult(map[string]interface{}{"facts": facts})
}

// MemoryStats handles the memory_stats tool
func (h *Handlers) MemoryStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.engine.Stats(h.user(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to collect stats: %v", err)), nil
	}

	return marshalResult(stats)
}

// ResetMemory handles the reset_memory tool
func (h *Handlers) ResetMemory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !request.GetBool("confirm", false) {
		return mcp.NewToolResultError("confirm must be true to reset memory"), nil
	}

	userID := h.user(request)
	if err := h.engine.ResetMemory(userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}

	return marshalResult(map[string]interface{}{
		"success": true,
		"user_id": userID,
	})
}

func marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
