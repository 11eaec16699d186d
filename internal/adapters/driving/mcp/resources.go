package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for travelog resources.
	uriScheme = "travelog://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "media/{mediaId}",
		Name:        "parsed-media",
		Description: "A stored parse result",
		MIMEType:    "application/json",
	}, s.handleMediaResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "provinces",
		Name:        "provinces",
		Description: "Provinces from the geographic reference data",
		MIMEType:    "application/json",
	}, s.handleProvincesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "provinces/{provinceKey}/cities",
		Name:        "province-cities",
		Description: "Cities of a specific province",
		MIMEType:    "application/json",
	}, s.handleCitiesResource)
}

// handleMediaResource returns a stored parse result as JSON.
func (s *Server) handleMediaResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Media == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractMediaID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Media.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting media: %w", err)
	}

	return jsonResource(req.Params.URI, doc)
}

// handleProvincesResource returns every province, or an empty list
// when no reference data is configured.
func (s *Server) handleProvincesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Geo == nil {
		return jsonResource(req.Params.URI, []domain.Province{})
	}

	provinces, err := s.ports.Geo.Provinces(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing provinces: %w", err)
	}

	return jsonResource(req.Params.URI, provinces)
}

// handleCitiesResource returns the cities of one province.
func (s *Server) handleCitiesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Geo == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	key := extractProvinceKey(req.Params.URI)
	if key == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	cities, err := s.ports.Geo.Cities(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("listing cities: %w", err)
	}

	return jsonResource(req.Params.URI, cities)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractMediaID extracts the media ID from a URI like travelog://media/{mediaId}.
func extractMediaID(uri string) string {
	const prefix = uriScheme + "media/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

// extractProvinceKey extracts the key from a URI like travelog://provinces/{provinceKey}/cities.
func extractProvinceKey(uri string) string {
	const prefix = uriScheme + "provinces/"
	const suffix = "/cities"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
