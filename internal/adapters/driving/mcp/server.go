package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/travelog/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// shutdownTimeout bounds how long RunHTTP waits for open sessions on exit.
const shutdownTimeout = 5 * time.Second

// Server exposes media parsing and stored parse results over MCP.
type Server struct {
	ports  *Ports
	server *mcp.Server
	tools  []string
}

// NewServer creates a new MCP server with the given ports.
// Media and geographic tools and resources are only offered when the
// matching port is set.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "travelog",
		Version: Version,
	}
	opts := &mcp.ServerOptions{
		Instructions: instructions(ports),
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, opts),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Tools returns the names of the registered tools, in registration order.
func (s *Server) Tools() []string {
	return append([]string(nil), s.tools...)
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving %s over stdio", strings.Join(s.tools, ", "))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP sessions over streamable HTTP on addr.
// It blocks until the context is cancelled or the listener fails.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown: %v", err)
		}
	}()

	logger.Info("mcp: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// addTool registers a tool and records its name.
func addTool[In, Out any](s *Server, tool *mcp.Tool, handler mcp.ToolHandlerFor[In, Out]) {
	mcp.AddTool(s.server, tool, handler)
	s.tools = append(s.tools, tool.Name)
}

// instructions tells clients what the server offers for the given ports.
func instructions(ports *Ports) string {
	lines := []string{
		"travelog parses FIT activity files and photo EXIF metadata into validated travel records.",
		"Use parse_file to inspect a file without storing it, and ingest_file to store the result and get its id.",
		"Records that fail validation are reported under rejected with their findings.",
	}
	if ports.Media != nil {
		lines = append(lines,
			"Stored results are listed with list_media and fetched with get_parsed_media or the "+
				uriScheme+"media/{mediaId} resource.")
	}
	if ports.Geo != nil {
		lines = append(lines,
			"Provinces are read from "+uriScheme+"provinces and their cities from "+
				uriScheme+"provinces/{provinceKey}/cities.")
	}
	return strings.Join(lines, "\n")
}
