package mcpserver

// EntryFormatContract describes the canonical journal entry structure
// that LLM consumers should follow when adding entries.
const EntryFormatContract = `# Dagaz Entry Contract

Every journal entry added through the MCP tools MUST follow this structure.

## Fields

- **title** (required): short, human-readable headline for the entry.
- **content** (required): the entry body. Plain text or simple HTML;
  markup is stripped for word counting and search.
- **mood** (required): exactly one of the fixed mood values below.
- **tags** (optional): comma-separated free-text labels. Tags are
  case-sensitive; reuse existing tags (see the list_tags tool) instead of
  inventing near-duplicates.

## Mood values

happy, content, neutral, sad, angry, motivated, anxious, grateful,
tired, excited

## Rules

1. The entry date is assigned server-side at creation time.
2. The word count is derived from the content; do not try to set it.
3. Ids are assigned server-side; remember the id returned by add_entry
   if you need to read the entry back.
`
