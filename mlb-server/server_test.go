package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diamondstats/baseball-mcp/internal/chart"
	"github.com/diamondstats/baseball-mcp/internal/config"
)

func connect(t *testing.T, cfg ServerConfig) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	server, _ := newServer(cfg)

	t1, t2 := mcp.NewInMemoryTransports()
	if _, err := server.Connect(ctx, t1, nil); err != nil {
		t.Fatalf("server connect: %v", err)
	}
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	return res
}

func firstText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "first content is %T", res.Content[0])
	return tc.Text
}

func TestServer_ListTools(t *testing.T) {
	_, cfg := tmpCfg(t)
	session := connect(t, cfg)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"lookup_player_id", "reverse_lookup_player", "search_players_fuzzy", "get_player_career_span",
		"get_batting_stats", "get_pitching_stats", "get_player_batting_stats_range", "get_team_batting_stats",
		"create_spray_chart", "create_stat_comparison_chart",
	}, names)
}

func TestServer_TextTool(t *testing.T) {
	_, cfg := tmpCfg(t)
	session := connect(t, cfg)

	res := callTool(t, session, "get_batting_stats", map[string]any{"season": 2024, "qual": 50})
	assert.False(t, res.IsError)
	assert.Contains(t, firstText(t, res), "## 2024 Batting Statistics (Standard Stats) - Min 50 PA")

	res = callTool(t, session, "get_batting_stats", map[string]any{"season": 2020})
	assert.False(t, res.IsError)
	assert.Equal(t, "❌ No batting statistics found for 2020 with qualifier 50+", firstText(t, res))
}

func TestServer_NoQualifiedBatters(t *testing.T) {
	dir, cfg := tmpCfg(t)
	writeThinBatting(t, dir)
	session := connect(t, cfg)

	res := callTool(t, session, "get_batting_stats", map[string]any{"season": 2024, "qual": 50})
	assert.False(t, res.IsError)
	assert.Equal(t, "❌ No batting statistics found for 2024 with qualifier 50+", firstText(t, res))
}

func TestServer_ValidationError(t *testing.T) {
	_, cfg := tmpCfg(t)
	session := connect(t, cfg)

	res := callTool(t, session, "reverse_lookup_player", map[string]any{"player_id": "1", "id_type": "espn"})
	assert.True(t, res.IsError)
	assert.Equal(t, "❌ Validation Error: Invalid ID type. Valid options: mlbam, fangraphs, bbref", firstText(t, res))
}

func TestServer_UpstreamError(t *testing.T) {
	_, cfg := tmpCfg(t)
	cfg.Source = failingSource{}
	session := connect(t, cfg)

	res := callTool(t, session, "lookup_player_id", map[string]any{"player_name": "Aaron Judge"})
	assert.True(t, res.IsError)
	assert.Equal(t, "❌ Error looking up player: upstream unavailable", firstText(t, res))

	res = callTool(t, session, "get_batting_stats", map[string]any{"season": 2024})
	assert.True(t, res.IsError)
	assert.Equal(t, "❌ Error retrieving batting statistics: upstream unavailable", firstText(t, res))
}

func TestServer_SprayChartArtifact(t *testing.T) {
	_, cfg := tmpCfg(t)
	session := connect(t, cfg)

	res := callTool(t, session, "create_spray_chart", map[string]any{"player_name": "Aaron Judge", "season": 2024})
	require.False(t, res.IsError, firstText(t, res))
	assert.Contains(t, firstText(t, res), "I've created a compact chart display for: **Aaron Judge - 2024 Spray Chart**")

	require.Len(t, res.Content, 2)
	er, ok := res.Content[1].(*mcp.EmbeddedResource)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(er.Resource.URI, "artifact://baseball/baseball_chart_"))
	assert.Equal(t, chart.ArtifactType, er.Resource.MIMEType)
	assert.Contains(t, er.Resource.Text, "data:image/png;base64,")

	structured, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var a chart.Artifact
	require.NoError(t, json.Unmarshal(structured, &a))
	assert.Equal(t, "Aaron Judge - 2024 Spray Chart", a.Title)
	assert.Equal(t, er.Resource.Text, a.Content)
}

func TestServer_SprayChartPrefixed(t *testing.T) {
	_, cfg := tmpCfg(t)
	cfg.ResponseFormat = config.FormatPrefixed
	session := connect(t, cfg)

	res := callTool(t, session, "create_spray_chart", map[string]any{"player_name": "Aaron Judge", "season": 2024, "chart_type": "heat_map"})
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.True(t, strings.HasPrefix(firstText(t, res), chart.MarkerPrefix))
}

func TestServer_ComparisonChartLegacy(t *testing.T) {
	_, cfg := tmpCfg(t)
	cfg.ChartMode = config.ChartLegacy
	session := connect(t, cfg)

	res := callTool(t, session, "create_stat_comparison_chart", map[string]any{
		"player_names": []string{"Aaron Judge", "Shohei Ohtani"},
		"season":       2024,
	})
	require.False(t, res.IsError)
	text := firstText(t, res)
	assert.True(t, strings.HasPrefix(text, "# 2024 Batting Comparison"))
	assert.Contains(t, text, "![2024 Batting Comparison](data:image/png;base64,")
	assert.Contains(t, text, "| Aaron Judge | 0.322 | 0.458 | 0.701 | 58 |")
}

func TestServer_Resources(t *testing.T) {
	_, cfg := tmpCfg(t)
	session := connect(t, cfg)
	ctx := context.Background()

	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: healthURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, healthText, res.Contents[0].Text)

	res, err = session.ReadResource(ctx, &mcp.ReadResourceParams{URI: infoURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	info := res.Contents[0].Text
	assert.Contains(t, info, "# Baseball MCP Server "+serverVersion)
	assert.Contains(t, info, "- **create_spray_chart**:")
	assert.Contains(t, info, "**Source mode**: store")
	assert.Contains(t, info, "**Chart mode**: artifact")
}

func TestHTTPHandler_Auth(t *testing.T) {
	_, scfg := tmpCfg(t)
	server, registry := newServer(scfg)

	cfg := config.Default()
	cfg.APIKey = "secret"
	h, err := newHTTPHandler(cfg, server, registry)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header http.Header
		want   int
	}{
		{"missing key", http.Header{}, http.StatusUnauthorized},
		{"wrong key", http.Header{"X-Api-Key": {"nope"}}, http.StatusUnauthorized},
		{"api key header", http.Header{"X-Api-Key": {"secret"}}, http.StatusOK},
		{"bearer", http.Header{"Authorization": {"Bearer secret"}}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header = tt.header
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHTTPHandler_Tools(t *testing.T) {
	_, scfg := tmpCfg(t)
	server, registry := newServer(scfg)

	h, err := newHTTPHandler(config.Default(), server, registry)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tools", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tools []toolInfo `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Tools, 10)
	assert.Equal(t, "lookup_player_id", body.Tools[0].Name)
}

func TestHTTPHandler_RequireAuth(t *testing.T) {
	_, scfg := tmpCfg(t)
	server, registry := newServer(scfg)

	cfg := config.Default()
	cfg.RequireAuth = true
	_, err := newHTTPHandler(cfg, server, registry)
	assert.ErrorContains(t, err, "MLB_MCP_API_KEY is required")
}
