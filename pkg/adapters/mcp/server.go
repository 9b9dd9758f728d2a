// Package mcp exposes the template library to MCP clients, so coding
// agents can browse templates and export workflow artifacts without
// the HTTP API.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lxyhes/flowforge/pkg/catalog"
	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/export"
	"github.com/lxyhes/flowforge/pkg/graph"
	"github.com/lxyhes/flowforge/pkg/store"
)

// Version is reported to MCP clients during initialization.
var Version = "dev"

// TemplateSummary is the per-template row returned by list_templates.
type TemplateSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Source   string `json:"source"`
}

// Server wraps the template store and exposes it as an MCP Server.
type Server struct {
	templates *store.Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(templates *store.Service, logger *slog.Logger) *Server {
	s := &Server{
		templates: templates,
		logger:    logger,
		mcpServer: server.NewMCPServer("flowforge-mcp", Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
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
		s.logger.Info("MCP server listening (SSE)", "address", addr)
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// lookup resolves an id against the custom store first, then the
// built-in catalog.
func (s *Server) lookup(ctx context.Context, id string) (domain.Template, error) {
	tpl, err := s.templates.Get(ctx, id)
	if err == nil {
		return tpl, nil
	}
	if builtin, ok := catalog.ByID(id); ok {
		return builtin, nil
	}
	return domain.Template{}, err
}

func (s *Server) registerTools() {
	// TOOL: list_templates
	listTool := mcp.NewTool("list_templates",
		mcp.WithDescription("List available workflow templates, custom templates first."),
		mcp.WithString("category", mcp.Description("Only return templates in this category (optional)")),
	)
	s.mcpServer.AddTool(listTool, s.handleListTemplates)

	// TOOL: get_template
	getTool := mcp.NewTool("get_template",
		mcp.WithDescription("Get the full node/edge definition of a workflow template."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Template id")),
	)
	s.mcpServer.AddTool(getTool, s.handleGetTemplate)

	// TOOL: export_workflow
	exportTool := mcp.NewTool("export_workflow",
		mcp.WithDescription("Export a workflow template as an agent or command artifact."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Template id")),
		mcp.WithString("format", mcp.Required(), mcp.Description("Artifact format: 'agent' or 'command'")),
	)
	s.mcpServer.AddTool(exportTool, s.handleExportWorkflow)
}

func (s *Server) handleListTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	customs, err := s.templates.ListCustom(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	category := request.GetString("category", "")

	all := append(append([]domain.Template{}, customs...), catalog.All()...)
	summaries := make([]TemplateSummary, 0, len(all))
	for _, t := range all {
		if category != "" && t.Category != category {
			continue
		}
		summaries = append(summaries, TemplateSummary{
			ID:       t.ID,
			Name:     t.Name,
			Category: t.Category,
			Source:   string(t.Source),
		})
	}

	jsonBytes, _ := json.Marshal(summaries)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tpl, err := s.lookup(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get failed: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(tpl)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleExportWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := request.RequireString("format")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tpl, err := s.lookup(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}

	steps := graph.DeriveStepSequence(tpl.Workflow())
	switch format {
	case "agent":
		return mcp.NewToolResultText(export.Marshal(export.ToAgentConfig(tpl.Name, tpl.Description, steps))), nil
	case "command":
		return mcp.NewToolResultText(export.Marshal(export.ToCommandConfig(tpl.Name, tpl.Description, steps))), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (expected 'agent' or 'command')", format)), nil
	}
}

func (s *Server) registerResources() {
	// EXPOSE: flowforge://catalog
	s.mcpServer.AddResource(mcp.NewResource("flowforge://catalog", "Built-in Template Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(catalog.All())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "flowforge://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
