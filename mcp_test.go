package docfmt_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bjaus/docfmt"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMCPImpl = &mcp.Implementation{Name: "docfmt-test", Version: "0.0.1"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	conv := docfmt.New(docfmt.Config{})
	srv := mcp.NewServer(testMCPImpl, nil)
	conv.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return result
}

func mcpToolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NoError(t, result.GetError())
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestMCPFormats(t *testing.T) {
	session := mcpSession(t)

	text := mcpToolText(t, mcpCallTool(t, session, "docfmt_formats", map[string]any{}))

	var resp struct {
		Sources     []string `json:"sources"`
		Targets     []string `json:"targets"`
		Conversions []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"conversions"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	assert.Len(t, resp.Sources, 5)
	assert.Len(t, resp.Targets, 10)
	assert.Len(t, resp.Conversions, 50)
	assert.Contains(t, resp.Sources, "json")
	assert.Contains(t, resp.Targets, "pdf")
}

func TestMCPConvert(t *testing.T) {
	session := mcpSession(t)

	text := mcpToolText(t, mcpCallTool(t, session, "docfmt_convert", map[string]any{
		"content": `[{"a":1}]`,
		"from":    "json",
		"to":      "csv",
	}))

	var resp struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
		MimeType string `json:"mimeType"`
		Meta     struct {
			OriginalSize  int `json:"originalSize"`
			ConvertedSize int `json:"convertedSize"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	assert.Equal(t, "\"a\"\n\"1\"\n", resp.Content)
	assert.Equal(t, "utf-8", resp.Encoding)
	assert.Equal(t, "text/csv", resp.MimeType)
	assert.Equal(t, len(`[{"a":1}]`), resp.Meta.OriginalSize)
	assert.Equal(t, len(resp.Content), resp.Meta.ConvertedSize)
}

func TestMCPConvertPDFBase64(t *testing.T) {
	session := mcpSession(t)

	text := mcpToolText(t, mcpCallTool(t, session, "docfmt_convert", map[string]any{
		"content": `{"pages":[{"paragraphs":["hello"]}]}`,
		"from":    "json",
		"to":      "pdf",
	}))

	var resp struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
		MimeType string `json:"mimeType"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	assert.Equal(t, "base64", resp.Encoding)
	assert.Equal(t, "application/pdf", resp.MimeType)

	raw, err := base64.StdEncoding.DecodeString(resp.Content)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF-1.4\n"))
}

func TestMCPConvertOptionsPassThrough(t *testing.T) {
	session := mcpSession(t)

	text := mcpToolText(t, mcpCallTool(t, session, "docfmt_convert", map[string]any{
		"content":  `{"pages":[{"paragraphs":["hello"]}]}`,
		"from":     "json",
		"to":       "pdf",
		"pageSize": "a4",
	}))

	var resp struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	raw, err := base64.StdEncoding.DecodeString(resp.Content)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "/MediaBox [0 0 595.28 841.89]")
}

func TestMCPConvertErrors(t *testing.T) {
	session := mcpSession(t)

	tests := map[string]map[string]any{
		"unknown source format": {"content": "x", "from": "nope", "to": "csv"},
		"unknown target format": {"content": "x", "from": "json", "to": "nope"},
		"unsupported pair":      {"content": "{}", "from": "json", "to": "docx"},
		"malformed content":     {"content": "{", "from": "json", "to": "csv"},
		"empty content":         {"content": "", "from": "json", "to": "csv"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			result := mcpCallTool(t, session, "docfmt_convert", args)
			require.Error(t, result.GetError())
		})
	}
}

func TestMCPConvertErrorMessage(t *testing.T) {
	session := mcpSession(t)

	result := mcpCallTool(t, session, "docfmt_convert", map[string]any{
		"content": "{}", "from": "json", "to": "docx",
	})
	err := result.GetError()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported conversion")
}
