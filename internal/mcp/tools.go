// ABOUTME: MCP tool definitions and registration for the keepsake server
// ABOUTME: Defines JSON schemas for all 7 memory tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rowan/keepsake/internal/core"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *core.Engine, defaultUser string) *Handlers {
	handlers := &Handlers{
		engine:      engine,
		defaultUser: defaultUser,
	}

	// 1. answer_question - Answer a question from stored memory
	server.AddTool(mcp.Tool{
		Name:        "answer_question",
		Description: "Answer a question using stored facts about the user. Runs semantic retrieval plus multi-strategy reasoning.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from memory",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User whose memory to consult (optional)",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AnswerQuestion)

	// 2. record_message - Record an inbound user message
	server.AddTool(mcp.Tool{
		Name:        "record_message",
		Description: "Record a user message. Classifies the message, derives generation settings for the reply, and compresses old history when needed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "User message to record",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User the message belongs to (optional)",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.RecordMessage)

	// 3. ingest_turn - Learn from a completed exchange
	server.AddTool(mcp.Tool{
		Name:        "ingest_turn",
		Description: "Learn from a completed user/assistant exchange: scores satisfaction, adapts personality, extracts and stores new facts.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "The user message of the exchange",
				},
				"response": map[string]interface{}{
					"type":        "string",
					"description": "The assistant response of the exchange",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User the exchange belongs to (optional)",
				},
			},
			Required: []string{"message", "response"},
		},
	}, handlers.IngestTurn)

	// 4. correct_fact - Correct a stored fact
	server.AddTool(mcp.Tool{
		Name:        "correct_fact",
		Description: "Correct the value of a stored fact. The old value is replaced in place and can no longer be retrieved.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"attribute": map[string]interface{}{
					"type":        "string",
					"description": "Attribute to correct (e.g. workplace, eye_color)",
				},
				"value": map[string]interface{}{
					"type":        "string",
					"description": "The corrected value",
				},
				"subject": map[string]interface{}{
					"type":        "string",
					"description": "Subject the fact is about (default: user)",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User the fact belongs to (optional)",
				},
			},
			Required: []string{"attribute", "value"},
		},
	}, handlers.CorrectFact)

	// 5. search_facts - Semantic fact search
	server.AddTool(mcp.Tool{
		Name:        "search_facts",
		Description: "Search stored facts by semantic similarity to a query.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 10)",
					"default":     10,
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User whose facts to search (optional)",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchFacts)

	// 6. memory_stats - Memory statistics
	server.AddTool(mcp.Tool{
		Name:        "memory_stats",
		Description: "Get statistics about stored memory: fact counts, subjects, satisfaction averages, compression state, and unlocked behaviors.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User whose stats to report (optional)",
				},
			},
		},
	}, handlers.MemoryStats)

	// 7. reset_memory - Delete all memory for a user
	server.AddTool(mcp.Tool{
		Name:        "reset_memory",
		Description: "Delete all stored memory for a user: facts, messages, summaries, learning history, and behaviors. Irreversible.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User whose memory to reset (optional)",
				},
				"confirm": map[string]interface{}{
					"type":        "boolean",
					"description": "Must be true to perform the reset",
				},
			},
			Required: []string{"confirm"},
		},
	}, handlers.ResetMemory)

	return handlers
}
