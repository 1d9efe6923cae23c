package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/dagaz/internal/journal"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/storage"
)

func testServer(t *testing.T) (*Server, *journal.Store) {
	t.Helper()

	backing, err := storage.NewDisk(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := journal.Open(backing, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	t.Cleanup(store.Close)

	srv := New(store)
	return srv, store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call
	// the tool handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_entries":
		result, err = srv.searchEntries(ctx, req)
	case "read_entry":
		result, err = srv.readEntry(ctx, req)
	case "add_entry":
		result, err = srv.addEntry(ctx, req)
	case "list_tags":
		result, err = srv.listTags(ctx, req)
	case "get_entry_contract":
		result, err = srv.getEntryContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestAddAndReadEntry(t *testing.T) {
	srv, store := testServer(t)

	r := callTool(t, srv, "add_entry", map[string]interface{}{
		"title":   "First",
		"content": "Hello journal",
		"mood":    "Happy",
		"tags":    "work, family",
	})
	if r.IsError {
		t.Fatalf("add_entry error: %s", resultText(r))
	}

	entries := store.ListEntries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Mood != models.MoodHappy {
		t.Errorf("mood = %q", entries[0].Mood)
	}
	if len(entries[0].Tags) != 2 || entries[0].Tags[0] != "work" {
		t.Errorf("tags = %v", entries[0].Tags)
	}

	r = callTool(t, srv, "read_entry", map[string]interface{}{"id": entries[0].ID})
	if r.IsError {
		t.Fatalf("read_entry error: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"title": "First"`) {
		t.Errorf("read result = %q", resultText(r))
	}
}

func TestAddEntryRejectsUnknownMood(t *testing.T) {
	srv, store := testServer(t)

	r := callTool(t, srv, "add_entry", map[string]interface{}{
		"title":   "Bad",
		"content": "x",
		"mood":    "euphoric",
	})
	if !r.IsError {
		t.Fatal("expected error for unknown mood")
	}
	if len(store.ListEntries()) != 0 {
		t.Error("entry was stored despite invalid mood")
	}
}

func TestReadEntryNotFound(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "read_entry", map[string]interface{}{"id": "ghost"})
	if !r.IsError {
		t.Fatal("expected error for unknown id")
	}
}

func TestSearchEntries(t *testing.T) {
	srv, store := testServer(t)

	_ = store.AddEntry(models.JournalEntry{
		ID: "e1", Title: "Beach day", Content: "sand and waves",
		Mood: models.MoodHappy, Date: time.Now(),
	})
	_ = store.AddEntry(models.JournalEntry{
		ID: "e2", Title: "Office", Content: "meetings",
		Mood: models.MoodTired, Date: time.Now(),
	})

	r := callTool(t, srv, "search_entries", map[string]interface{}{"query": "waves"})
	text := resultText(r)
	if !strings.Contains(text, "Beach day") || strings.Contains(text, "Office") {
		t.Errorf("search result = %q", text)
	}

	r = callTool(t, srv, "search_entries", map[string]interface{}{"mood": "tired"})
	text = resultText(r)
	if !strings.Contains(text, "Office") || strings.Contains(text, "Beach day") {
		t.Errorf("mood search result = %q", text)
	}
}

func TestListTags(t *testing.T) {
	srv, store := testServer(t)

	_ = store.AddEntry(models.JournalEntry{
		ID: "e1", Title: "t", Content: "c", Mood: models.MoodNeutral,
		Tags: []string{"alpha", "beta"}, Date: time.Now(),
	})

	r := callTool(t, srv, "list_tags", nil)
	text := resultText(r)
	if !strings.Contains(text, "alpha") || !strings.Contains(text, "beta") {
		t.Errorf("list_tags result = %q", text)
	}
}

func TestEntryContractToolAndResource(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_entry_contract", nil)
	if resultText(r) != EntryFormatContract {
		t.Error("contract tool did not return the canonical contract")
	}

	contents, err := srv.readEntryFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 resource content, got %d", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("unexpected content type %T", contents[0])
	}
	if tc.URI != "dagaz://entry-format" || tc.Text != EntryFormatContract {
		t.Errorf("resource = %+v", tc)
	}
}
