package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/diamondstats/baseball-mcp/internal/chart"
	"github.com/diamondstats/baseball-mcp/internal/config"
	"github.com/diamondstats/baseball-mcp/internal/reply"
	"github.com/diamondstats/baseball-mcp/internal/source"
	"github.com/diamondstats/baseball-mcp/internal/validate"
)

const (
	serverName    = "baseball-mcp"
	serverVersion = "0.3.0"
)

// ServerConfig is what every tool handler needs.
type ServerConfig struct {
	Source    source.Source
	Validator validate.Validator
	Log       zerolog.Logger

	ChartMode      string
	ResponseFormat string
	Compact        bool
	// SourceName is reported by info://server.
	SourceName string
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newServer(cfg ServerConfig) (*mcp.Server, []toolInfo) {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		nil,
	)

	registry := make([]toolInfo, 0, 10)
	registerPlayerTools(server, &registry, cfg)
	registerStatsTools(server, &registry, cfg)
	registerPlotTools(server, &registry, cfg)
	addResources(server, cfg, registry)

	cfg.Log.Info().Int("tools", len(registry)).Str("source", cfg.SourceName).Msg("tools registered")
	return server, registry
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler mcp.ToolHandlerFor[T, any]) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

// buildFunc produces a tool's reply. Errors are either validation errors,
// shown verbatim, or upstream failures described by the handler's action.
type buildFunc[T any] func(context.Context, ServerConfig, T) (reply.Reply, error)

func handle[T any](cfg ServerConfig, action string, build buildFunc[T]) mcp.ToolHandlerFor[T, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args T) (*mcp.CallToolResult, any, error) {
		r, err := build(ctx, cfg, args)
		if err != nil {
			return toolError(cfg, toolName(req), action, args, err), nil, nil
		}
		return toolReply(cfg, r)
	}
}

func toolName(req *mcp.CallToolRequest) string {
	if req == nil || req.Params == nil {
		return ""
	}
	return req.Params.Name
}

// invalid reports a bad argument the validator has no check for.
func invalid(format string, args ...any) error {
	return &validate.ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func toolError(cfg ServerConfig, tool, action string, args any, err error) *mcp.CallToolResult {
	var ve *validate.ValidationError
	if errors.As(err, &ve) {
		cfg.Log.Debug().Str("tool", tool).Str("reason", ve.Msg).Msg("invalid arguments")
		return textResult("❌ Validation Error: "+ve.Msg, true)
	}
	cfg.Log.Error().Err(err).Str("tool", tool).Interface("args", args).Msg("tool failed")
	return textResult(fmt.Sprintf("❌ Error %s: %v", action, err), true)
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: isError,
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// artifactURI names an artifact inside an embedded resource.
func artifactURI(id string) string {
	return "artifact://baseball/" + id
}

// toolReply converts a reply at the transport boundary. Artifacts become a
// summary, the HTML document as an embedded resource, and the artifact
// record as structured content. The prefixed format keeps the
// CHART_ARTIFACT: text form for hosts that parse it.
func toolReply(cfg ServerConfig, r reply.Reply) (*mcp.CallToolResult, any, error) {
	if !r.IsArtifact() || cfg.ResponseFormat == config.FormatPrefixed {
		text, err := reply.Encode(r)
		if err != nil {
			return textResult(fmt.Sprintf("❌ Error encoding chart: %v", err), true), nil, nil
		}
		return textResult(text, r.Failed), nil, nil
	}

	a := r.Artifact
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: r.String()},
			&mcp.EmbeddedResource{
				Resource: &mcp.ResourceContents{
					URI:      artifactURI(a.ID),
					MIMEType: a.ArtifactType,
					Text:     a.Content,
				},
			},
		},
	}, a, nil
}

// chartReply packages a chart for the configured chart mode.
func chartReply(cfg ServerConfig, cd chart.ChartData) (reply.Reply, error) {
	if cfg.ChartMode == config.ChartLegacy {
		return reply.Text(chart.InlineMarkdown(cd)), nil
	}
	r, err := reply.FromChart(cd, cfg.Compact)
	if err != nil {
		return reply.Reply{}, fmt.Errorf("build chart artifact: %w", err)
	}
	return r, nil
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func stringOr(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

var leagues = []string{"all", "al", "nl"}
