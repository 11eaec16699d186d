package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// defaultListLimit caps list_media when the caller gives no limit.
const defaultListLimit = 20

// PathInput is the input schema for the parse_file tool.
type PathInput struct {
	Path string `json:"path" jsonschema:"absolute path of the media file"`
}

// ParseOutput is the output schema for the parse_file tool.
type ParseOutput struct {
	Path     string         `json:"path"`
	Format   string         `json:"format"`
	Counts   map[string]int `json:"counts"`
	Rejected int            `json:"rejected"`
	Result   any            `json:"result,omitempty"`
}

// IngestInput is the input schema for the ingest_file tool.
type IngestInput struct {
	Path  string         `json:"path" jsonschema:"absolute path of the media file"`
	Extra map[string]any `json:"extra,omitempty" jsonschema:"metadata stored alongside the parse result"`
}

// IngestOutput is the output schema for the ingest_file tool.
type IngestOutput struct {
	ID string `json:"id"`
}

// GetMediaInput is the input schema for the get_parsed_media tool.
type GetMediaInput struct {
	ID string `json:"id" jsonschema:"correlation id of the stored document"`
}

// GetMediaOutput is the output schema for the get_parsed_media tool.
type GetMediaOutput struct {
	Document any `json:"document"`
}

// ListMediaInput is the input schema for the list_media tool.
type ListMediaInput struct {
	Format     string `json:"format,omitempty" jsonschema:"restrict to one format: fit, photo or video"`
	PathPrefix string `json:"path_prefix,omitempty" jsonschema:"restrict to stored paths with this prefix"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 20)"`
}

// ListMediaOutput is the output schema for the list_media tool.
type ListMediaOutput struct {
	Media []MediaSummary `json:"media"`
	Count int            `json:"count"`
}

// MediaSummary describes a stored document without its payload.
type MediaSummary struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	Format    string `json:"format"`
	Entries   int    `json:"entries"`
	Rejected  int    `json:"rejected"`
	UpdatedAt string `json:"updated_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	addTool(s, &mcp.Tool{
		Name:        "parse_file",
		Description: "Parse a FIT activity file or photo without storing the result",
	}, s.handleParseFile)

	addTool(s, &mcp.Tool{
		Name:        "ingest_file",
		Description: "Parse a media file and store the result, returning its id",
	}, s.handleIngestFile)

	if s.ports.Media == nil {
		return
	}

	addTool(s, &mcp.Tool{
		Name:        "get_parsed_media",
		Description: "Fetch a stored parse result by id",
	}, s.handleGetParsedMedia)

	addTool(s, &mcp.Tool{
		Name:        "list_media",
		Description: "List stored parse results, most recently updated first",
	}, s.handleListMedia)
}

// handleParseFile handles the parse_file tool invocation.
func (s *Server) handleParseFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PathInput,
) (*mcp.CallToolResult, ParseOutput, error) {
	if input.Path == "" {
		return nil, ParseOutput{}, errors.New("path is required")
	}

	result, err := s.ports.Ingest.Parse(ctx, input.Path)
	if err != nil {
		return nil, ParseOutput{}, err
	}

	return nil, summarise(result), nil
}

// handleIngestFile handles the ingest_file tool invocation.
func (s *Server) handleIngestFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if input.Path == "" {
		return nil, IngestOutput{}, errors.New("path is required")
	}

	id, err := s.ports.Ingest.Ingest(ctx, input.Path, input.Extra)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{ID: id}, nil
}

// handleGetParsedMedia handles the get_parsed_media tool invocation.
func (s *Server) handleGetParsedMedia(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetMediaInput,
) (*mcp.CallToolResult, GetMediaOutput, error) {
	if input.ID == "" {
		return nil, GetMediaOutput{}, errors.New("id is required")
	}

	doc, err := s.ports.Media.Get(ctx, input.ID)
	if err != nil {
		return nil, GetMediaOutput{}, err
	}

	return nil, GetMediaOutput{Document: doc}, nil
}

// handleListMedia handles the list_media tool invocation.
func (s *Server) handleListMedia(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListMediaInput,
) (*mcp.CallToolResult, ListMediaOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	filter := domain.MediaFilter{
		Format:     domain.Format(input.Format),
		PathPrefix: input.PathPrefix,
	}
	docs, err := s.ports.Media.List(ctx, filter, limit)
	if err != nil {
		return nil, ListMediaOutput{}, err
	}

	output := ListMediaOutput{
		Media: make([]MediaSummary, len(docs)),
		Count: len(docs),
	}
	for i := range docs {
		output.Media[i] = MediaSummary{
			ID:        docs[i].ID,
			Path:      docs[i].Path,
			Format:    string(docs[i].Format),
			Entries:   docs[i].Result.Total(),
			Rejected:  len(docs[i].Result.Rejected),
			UpdatedAt: docs[i].Provenance.UpdatedAt.Format(time.RFC3339),
		}
	}

	return nil, output, nil
}

// summarise builds the parse_file output with per-bucket counts.
func summarise(result *domain.ParseResult) ParseOutput {
	out := ParseOutput{
		Path:     result.Path,
		Format:   string(result.Format),
		Counts:   make(map[string]int),
		Rejected: len(result.Rejected),
		Result:   result,
	}
	for b, entries := range result.Records {
		out.Counts[b.String()] = len(entries)
	}
	for b, fields := range result.Categories {
		out.Counts[b.String()] = len(fields)
	}
	return out
}
