// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes journal tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/dagaz/internal/journal"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/search"
)

// Server wraps the MCP server with journal tools.
type Server struct {
	mcp   *server.MCPServer
	store *journal.Store
}

// New creates a new MCP server with all journal tools registered.
func New(store *journal.Store) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"Dagaz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_entries",
		mcp.WithDescription("Search journal entries by text, mood, and tag. All filters combine with AND."),
		mcp.WithString("query", mcp.Description("Text to match against title, content, and tags")),
		mcp.WithString("mood", mcp.Description("Filter by mood value (e.g. happy, sad)")),
		mcp.WithString("tag", mcp.Description("Filter by exact tag")),
	), s.searchEntries)

	s.mcp.AddTool(mcp.NewTool("read_entry",
		mcp.WithDescription("Read a single journal entry by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
	), s.readEntry)

	s.mcp.AddTool(mcp.NewTool("add_entry",
		mcp.WithDescription("Add a new journal entry. The mood MUST be one of the fixed mood "+
			"values; read the get_entry_contract tool or the dagaz://entry-format resource first."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Entry title")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Entry body text")),
		mcp.WithString("mood", mcp.Required(), mcp.Description("One of the fixed mood values")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags")),
	), s.addEntry)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag in the registry."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("get_entry_contract",
		mcp.WithDescription("Returns the canonical journal entry contract. "+
			"Call this before adding entries to ensure correct structure."),
	), s.getEntryContract)

	// Resource: entry format contract.
	s.mcp.AddResource(
		mcp.NewResource("dagaz://entry-format", "Entry Format Contract",
			mcp.WithResourceDescription("Canonical journal entry structure and mood set."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readEntryFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchEntries(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var f search.Filter
	if v, err := req.RequireString("query"); err == nil {
		f.Query = v
	}
	if v, err := req.RequireString("mood"); err == nil {
		f.Mood = models.Mood(v)
	}
	if v, err := req.RequireString("tag"); err == nil {
		f.Tag = v
	}
	results := search.Apply(s.store.ListEntries(), f)
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readEntry(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, ok := s.store.GetEntry(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(entry, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addEntry(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	moodRaw, err := req.RequireString("mood")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mood := models.Mood(strings.ToLower(moodRaw))
	if !mood.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown mood: %s", moodRaw)), nil
	}

	rawTags := ""
	if v, err := req.RequireString("tags"); err == nil {
		rawTags = v
	}
	var tags []string
	for _, tag := range strings.Split(rawTags, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	entry := models.JournalEntry{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Mood:    mood,
		Tags:    tags,
		Date:    time.Now(),
	}
	if err := s.store.AddEntry(entry); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	created, _ := s.store.GetEntry(entry.ID)
	out, _ := json.MarshalIndent(created, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTags(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.store.Tags(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getEntryContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(EntryFormatContract), nil
}

func (s *Server) readEntryFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "dagaz://entry-format",
			MIMEType: "text/markdown",
			Text:     EntryFormatContract,
		},
	}, nil
}
