package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samestrin/llm-image-mcp/internal/imagemcp/mcpserver"
	"github.com/samestrin/llm-image-mcp/pkg/imageapi"
)

const (
	serverName         = "llm-image-mcp"
	serverVersion      = "1.0.0"
	serverInstructions = "llm-image-mcp exposes an image-management service as MCP tools: fetch image metadata, trigger transcoding, list categories and sizes, get signed URLs for resized renditions, and upload images with or without immediate resizing."
)

func main() {
	setupLogging()

	cfg, err := imageapi.LoadConfig(os.Args[1:], os.Getenv("LLM_IMAGE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		fmt.Fprintf(os.Stderr, "Usage: %s <base-url> [api-key]\n", os.Args[0])
		os.Exit(1)
	}

	client := imageapi.NewClient(cfg.BaseURL, cfg.APIKey)
	handler := mcpserver.NewHandler(client)

	// Create MCP server using official SDK
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})

	// Register all tools
	tools := mcpserver.GetToolDefinitions()
	for _, toolDef := range tools {
		// Capture for closure
		td := toolDef
		server.AddTool(&mcp.Tool{
			Name:        td.Name,
			Description: td.Description,
			InputSchema: td.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			// Unmarshal arguments
			var args map[string]interface{}
			if req.Params.Arguments != nil {
				if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
					return &mcp.CallToolResult{
						Content: []mcp.Content{
							&mcp.TextContent{Text: "Error parsing arguments: " + err.Error()},
						},
						IsError: true,
					}, nil
				}
			}

			// Execute the tool using the handler
			output, err := handler.Execute(ctx, td.Name, args)
			if err != nil {
				return &mcp.CallToolResult{
					Content: []mcp.Content{
						&mcp.TextContent{Text: "Error: " + err.Error()},
					},
					IsError: true,
				}, nil
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{Text: output},
				},
			}, nil
		})
	}

	slog.Info("server started", "name", serverName, "version", serverVersion, "tools", len(tools), "baseURL", cfg.BaseURL)

	// Run server on stdio; stdout belongs to the protocol, all logging goes
	// to stderr.
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes leveled structured logs to stderr. LOG_LEVEL selects
// debug/info/warn/error, defaulting to info.
func setupLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
