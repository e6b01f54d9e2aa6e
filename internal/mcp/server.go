// Package mcp exposes the documentation index over the Model Context
// Protocol: keyword search and module listing tools, plus a resource
// template for reading individual items.
package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rhaitools/rhaidocs/internal/db"
	"github.com/rhaitools/rhaidocs/internal/search"
)

//go:embed instructions.md
var instructions string

type Server struct {
	mcpServer *server.MCPServer
	db        *db.DB
	searcher  *search.Searcher
}

func NewServer(database *db.DB) *Server {
	s := &Server{db: database, searcher: search.NewSearcher(database)}

	mcpServer := server.NewMCPServer(
		"rhaidocs",
		"0.1.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("search_docs",
			mcp.WithDescription("Keyword search across indexed script API documentation. Returns URIs that can be read as resources. Use `namespaces` to filter to specific modules; omit to search everything."),
			mcp.WithString("query",
				mcp.Description("Search terms (function names, type names or doc keywords)"),
				mcp.Required(),
			),
			mcp.WithArray("namespaces",
				mcp.Description("Optional list of module namespaces to search within, e.g. [\"global/my_module\"]"),
				mcp.Items(map[string]interface{}{"type": "string"}),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results (default 10)"),
			),
		),
		s.handleSearchDocs,
	)

	mcpServer.AddTool(
		mcp.NewTool("get_doc",
			mcp.WithDescription("Read one documented item as markdown by module namespace and item name."),
			mcp.WithString("namespace",
				mcp.Description("Module namespace, e.g. \"global/my_module\""),
				mcp.Required(),
			),
			mcp.WithString("item",
				mcp.Description("Item display name: a function group, operator token or custom type name"),
				mcp.Required(),
			),
		),
		s.handleGetDoc,
	)

	mcpServer.AddTool(
		mcp.NewTool("list_modules",
			mcp.WithDescription("List indexed module namespaces with their item counts."),
		),
		s.handleListModules,
	)
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"rhaidoc://{namespace}/{item}",
			"Script API documentation item",
			mcp.WithTemplateDescription("Read a specific documented item. Search results return these URIs."),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleReadResource,
	)
}

func (s *Server) handleSearchDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	var namespaces []string
	if nsRaw, ok := args["namespaces"]; ok {
		nsJSON, _ := json.Marshal(nsRaw)
		json.Unmarshal(nsJSON, &namespaces)
	}
	limit := 10
	if l, ok := args["limit"].(float64); ok {
		limit = int(l)
	}

	results, err := s.searcher.Search(query, namespaces, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	resultJSON, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleGetDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	namespace, _ := args["namespace"].(string)
	name, _ := args["item"].(string)
	if namespace == "" || name == "" {
		return mcp.NewToolResultError("missing required parameters: namespace, item"), nil
	}

	item, err := s.db.GetItem(namespace, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("looking up item: %v", err)), nil
	}
	if item == nil {
		return mcp.NewToolResultError(fmt.Sprintf("item not found: %s/%s", namespace, name)), nil
	}

	text, err := s.searcher.ItemMarkdown(item, namespace)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading doc: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

type moduleEntry struct {
	Namespace string    `json:"namespace"`
	Name      string    `json:"name"`
	Doc       string    `json:"doc,omitempty"`
	Items     int       `json:"items"`
	IndexedAt time.Time `json:"indexed_at"`
}

func (s *Server) handleListModules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.db.ListModuleStats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing modules: %v", err)), nil
	}

	entries := make([]moduleEntry, 0, len(stats))
	for _, st := range stats {
		entries = append(entries, moduleEntry{
			Namespace: st.Namespace,
			Name:      st.Name,
			Doc:       st.Doc,
			Items:     st.Items,
			IndexedAt: st.IndexedAt,
		})
	}

	resultJSON, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	namespace, name, err := search.ParseURI(uri)
	if err != nil {
		return nil, err
	}

	item, err := s.db.GetItem(namespace, name)
	if err != nil {
		return nil, fmt.Errorf("looking up item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("item not found: %s", uri)
	}

	text, err := s.searcher.ItemMarkdown(item, namespace)
	if err != nil {
		return nil, fmt.Errorf("getting doc: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     text,
		},
	}, nil
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) Shutdown(_ context.Context) error {
	return s.db.Close()
}
