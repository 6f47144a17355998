// Package mcp exposes the fixture runner as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/randomizer"
	"github.com/aretw0/randomizer/pkg/domain"
	"github.com/aretw0/randomizer/pkg/ports"
	"github.com/aretw0/randomizer/pkg/runner"
	"github.com/aretw0/randomizer/pkg/schema"
)

// kindsURI serves the list of blueprint kinds.
const kindsURI = "randomizer://kinds"

// GenerateInput is the argument set of the generate tool.
type GenerateInput struct {
	Blueprint string `json:"blueprint,omitempty"`
	Template  string `json:"template,omitempty"`
	Seed      string `json:"seed,omitempty"`
	Count     int    `json:"count,omitempty"`
	Workers   int    `json:"workers,omitempty"`
	Save      bool   `json:"save,omitempty"`
}

// GenerateResult is the structured output of the generate tool.
type GenerateResult struct {
	ID        string `json:"id" jsonschema_description:"Deterministic fixture ID"`
	Blueprint string `json:"blueprint" jsonschema_description:"Blueprint name"`
	Seed      string `json:"seed" jsonschema_description:"Seed the values were drawn from"`
	Workers   int    `json:"workers,omitempty" jsonschema_description:"Parallel workers used, 0 for sequential"`
	Values    []any  `json:"values" jsonschema_description:"Generated values"`
}

// TemplatesResult is the structured output of the list_templates tool.
type TemplatesResult struct {
	Templates []domain.TemplateInfo `json:"templates"`
}

// Server wraps the runner and exposes it as an MCP Server.
type Server struct {
	runner    *runner.Runner
	library   ports.TemplateLibrary
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. library may be nil.
func NewServer(r *runner.Runner, library ports.TemplateLibrary) *Server {
	s := &Server{
		runner:  r,
		library: library,
		mcpServer: server.NewMCPServer("randomizer-mcp", strings.TrimSpace(randomizer.Version),
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// ServeSSE serves MCP over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+displayHost(addr)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
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

func displayHost(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(generateTool(), s.handleGenerate)
	s.mcpServer.AddTool(listTemplatesTool(), s.handleListTemplates)
}

func generateTool() mcp.Tool {
	return mcp.NewTool("generate",
		mcp.WithDescription("Generate deterministic values from a blueprint. Pass either an inline YAML blueprint or a template ID."),
		mcp.WithString("blueprint", mcp.Description("Inline blueprint document (YAML or JSON)")),
		mcp.WithString("template", mcp.Description("ID of a blueprint in the template library")),
		mcp.WithString("seed", mcp.Description("Seed overriding the blueprint seed")),
		mcp.WithNumber("count", mcp.Description("Number of values to draw"), mcp.Min(0), mcp.Max(runner.DefaultMaxCount)),
		mcp.WithNumber("workers", mcp.Description("Parallel workers; values below 2 run sequentially"), mcp.Min(0), mcp.Max(runner.DefaultMaxWorkers)),
		mcp.WithBoolean("save", mcp.Description("Persist the fixture in the configured store")),
		mcp.WithOutputSchema[GenerateResult](),
	)
}

func listTemplatesTool() mcp.Tool {
	return mcp.NewTool("list_templates",
		mcp.WithDescription("List the blueprints held by the template library."),
		mcp.WithOutputSchema[TemplatesResult](),
	)
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input GenerateInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid generate arguments", err), nil
	}

	opts := runner.RunOptions{Seed: input.Seed, Count: input.Count, Workers: input.Workers, Save: input.Save}

	var (
		fixture *domain.Fixture
		err     error
	)
	switch {
	case input.Blueprint != "" && input.Template != "":
		return mcp.NewToolResultError("blueprint and template are mutually exclusive"), nil
	case input.Blueprint != "":
		fixture, err = s.runner.RunDocument(ctx, []byte(input.Blueprint), opts)
	case input.Template != "":
		if s.library == nil {
			return mcp.NewToolResultError("no template library configured"), nil
		}
		fixture, err = s.runner.RunTemplate(ctx, s.library, input.Template, opts)
	default:
		return mcp.NewToolResultError("blueprint or template is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorFromErr("generate failed", err), nil
	}

	return mcp.NewToolResultStructuredOnly(GenerateResult{
		ID:        fixture.ID,
		Blueprint: fixture.Blueprint,
		Seed:      fixture.Seed,
		Workers:   fixture.Workers,
		Values:    fixture.Values,
	}), nil
}

func (s *Server) handleListTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.library == nil {
		return mcp.NewToolResultError("no template library configured"), nil
	}
	infos, err := s.library.List(ctx)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("list failed", err), nil
	}
	return mcp.NewToolResultStructuredOnly(TemplatesResult{Templates: infos}), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(kindsURI, "Blueprint kinds",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(schema.Kinds)
		if err != nil {
			return nil, errors.New("failed to encode kinds")
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      kindsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
