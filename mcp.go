package docfmt

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterMCP registers the conversion tools on an MCP server.
func (c *Converter) RegisterMCP(srv *mcp.Server) {
	c.registerConvertTool(srv)
	c.registerFormatsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// --- convert ---

type convertReq struct {
	Content            string `json:"content"`
	From               string `json:"from"`
	To                 string `json:"to"`
	Quality            string `json:"quality,omitempty"`
	FontSize           int    `json:"fontSize,omitempty"`
	PageSize           string `json:"pageSize,omitempty"`
	Margin             int    `json:"margin,omitempty"`
	PreserveFormatting bool   `json:"preserveFormatting,omitempty"`
	IncludeMetadata    bool   `json:"includeMetadata,omitempty"`
	Compression        bool   `json:"compression,omitempty"`
}

type convertResp struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	MimeType string `json:"mimeType"`
	Meta     Meta   `json:"meta"`
}

func (c *Converter) registerConvertTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docfmt_convert",
		Description: "Convert document or data content between formats (json, csv, txt, md, html in; pdf, csv, tsv, html, xml, txt, md, json, yaml, jsonl out).",
		InputSchema: inputSchema(map[string]any{
			"content":            map[string]any{"type": "string", "description": "Source content"},
			"from":               map[string]any{"type": "string", "description": "Source format name"},
			"to":                 map[string]any{"type": "string", "description": "Target format name"},
			"quality":            map[string]any{"type": "string", "description": "Rendering quality: low, medium, or high"},
			"fontSize":           map[string]any{"type": "integer", "description": "Font size for print output"},
			"pageSize":           map[string]any{"type": "string", "description": "Page size: a4, letter, or legal"},
			"margin":             map[string]any{"type": "integer", "description": "Page margin in points"},
			"preserveFormatting": map[string]any{"type": "boolean", "description": "Keep source line breaks where the target allows"},
			"includeMetadata":    map[string]any{"type": "boolean", "description": "Embed generator metadata in the output"},
			"compression":        map[string]any{"type": "boolean", "description": "Compress PDF content streams"},
		}, []string{"content", "from", "to"}),
	}

	srv.AddTool(tool, func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r convertReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("invalid arguments: %w", err))
			return &res, nil
		}
		resp, err := c.convertCall(r)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(err)
			return &res, nil
		}
		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

// convertCall adapts a tool request onto [Converter.Convert]. Binary
// output is base64-encoded; text output passes through.
func (c *Converter) convertCall(r convertReq) (*convertResp, error) {
	from, err := ParseFormat(r.From)
	if err != nil {
		return nil, err
	}
	to, err := ParseFormat(r.To)
	if err != nil {
		return nil, err
	}
	res, err := c.Convert([]byte(r.Content), from, to, Options{
		Quality:            Quality(r.Quality),
		FontSize:           r.FontSize,
		PageSize:           PageSize(r.PageSize),
		Margin:             r.Margin,
		PreserveFormatting: r.PreserveFormatting,
		IncludeMetadata:    r.IncludeMetadata,
		Compression:        r.Compression,
	})
	if err != nil {
		return nil, err
	}
	resp := &convertResp{MimeType: res.MimeType, Meta: res.Meta}
	if to == PDF {
		resp.Content = base64.StdEncoding.EncodeToString(res.Bytes)
		resp.Encoding = "base64"
	} else {
		resp.Content = string(res.Bytes)
		resp.Encoding = "utf-8"
	}
	return resp, nil
}

// --- formats ---

func (c *Converter) registerFormatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docfmt_formats",
		Description: "List supported source formats, target formats, and conversion pairs.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	srv.AddTool(tool, func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := json.Marshal(map[string]any{
			"sources":     Sources(),
			"targets":     Targets(),
			"conversions": Conversions(),
		})
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}
