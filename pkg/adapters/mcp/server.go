package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/troupe"
	"github.com/aretw0/troupe/internal/compiler"
	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/report"
	"github.com/aretw0/troupe/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Engine defines what the MCP server needs from the Troupe engine.
type Engine interface {
	Execute(ctx context.Context, def *domain.Definition, dry bool) (*domain.Run, error)
	Validate(def *domain.Definition) error
	Kinds() []string
	Lookup(kind string) (domain.Actor, error)
}

// KindInfo describes a registered kind.
type KindInfo struct {
	Kind      string         `json:"kind"`
	Composite bool           `json:"composite"`
	Options   schema.Options `json:"options"`
}

// Server wraps the Troupe Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("troupe-mcp", troupe.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server (used by tests and custom transports).
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: execute
	s.mcpServer.AddTool(mcp.NewTool("execute",
		mcp.WithDescription("Execute a workflow definition (YAML or JSON). Runs in dry mode unless dry is false."),
		mcp.WithString("definition", mcp.Required(), mcp.Description("Workflow definition as YAML or JSON")),
		mcp.WithBoolean("dry", mcp.Description("Report what would happen without side effects (default true)")),
	), s.handleExecute)

	// TOOL: validate
	s.mcpServer.AddTool(mcp.NewTool("validate",
		mcp.WithDescription("Check a workflow definition and list every problem found."),
		mcp.WithString("definition", mcp.Required(), mcp.Description("Workflow definition as YAML or JSON")),
	), s.handleValidate)

	// TOOL: list_kinds
	s.mcpServer.AddTool(mcp.NewTool("list_kinds",
		mcp.WithDescription("List the registered actor kinds and their options."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.kindInfos())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode kinds: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: describe_kind
	s.mcpServer.AddTool(mcp.NewTool("describe_kind",
		mcp.WithDescription("Show the documentation of an actor kind as markdown."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Actor kind, e.g. group.Sync")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind := request.GetString("kind", "")
		actor, err := s.engine.Lookup(kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(report.KindMarkdown(kind, actor)), nil
	})
}

func (s *Server) handleExecute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	def, err := troupe.Parse([]byte(request.GetString("definition", "")))
	if err != nil {
		return mcp.NewToolResultError(formatErrors(err)), nil
	}

	run, err := s.engine.Execute(ctx, def, request.GetBool("dry", true))
	if err != nil {
		return mcp.NewToolResultError(formatErrors(err)), nil
	}

	jsonBytes, err := json.Marshal(run)
	if err != nil {
		return nil, fmt.Errorf("encode run: %w", err)
	}
	result := mcp.NewToolResultText(string(jsonBytes))
	result.IsError = !run.Succeeded()
	return result, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	def, err := troupe.Parse([]byte(request.GetString("definition", "")))
	if err == nil {
		err = s.engine.Validate(def)
	}
	if err != nil {
		return mcp.NewToolResultError(formatErrors(err)), nil
	}
	return mcp.NewToolResultText("valid"), nil
}

func (s *Server) registerResources() {
	// EXPOSE: troupe://kinds
	s.mcpServer.AddResource(mcp.NewResource("troupe://kinds", "Registered Actor Kinds",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.kindInfos())
		if err != nil {
			return nil, fmt.Errorf("failed to encode kinds: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "troupe://kinds",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) kindInfos() []KindInfo {
	kinds := s.engine.Kinds()
	infos := make([]KindInfo, 0, len(kinds))
	for _, kind := range kinds {
		actor, err := s.engine.Lookup(kind)
		if err != nil {
			continue
		}
		_, composite := actor.(domain.Composite)
		infos = append(infos, KindInfo{Kind: kind, Composite: composite, Options: actor.Schema()})
	}
	return infos
}

// formatErrors lists build errors one per line.
func formatErrors(err error) string {
	errs := compiler.Errors(err)
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = "- " + e.Error()
	}
	return strings.Join(lines, "\n")
}
