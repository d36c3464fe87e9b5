package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixmap-sobel-mcp/internal/golden"
	"github.com/ironsheep/pixmap-sobel-mcp/internal/pixmap"
	"github.com/ironsheep/pixmap-sobel-mcp/internal/sobel"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pixmap_load", "pixmap_sobel").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	if s.debug {
		log.Printf("tools/call %s %s", params.Name, params.Arguments)
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Printf("Tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "pixmap_load":
		return s.handlePixmapLoad(args)
	case "pixmap_sobel":
		return s.handlePixmapSobel(args)
	case "pixmap_import":
		return s.handlePixmapImport(args)
	case "pixmap_compare":
		return s.handlePixmapCompare(args)
	case "pixmap_compare_suite":
		return s.handlePixmapCompareSuite(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type pixmapLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handlePixmapLoad(args json.RawMessage) (interface{}, error) {
	var a pixmapLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return pixmap.LoadInfo(s.cache, a.Path)
}

type pixmapSobelArgs struct {
	Input    string `json:"input"`
	Output   string `json:"output"`
	Encoding string `json:"encoding"`
}

// SobelResult describes a written gradient-magnitude map.
type SobelResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// MaxValue is always 255.
	MaxValue int    `json:"max_value"`
	Encoding string `json:"encoding"`

	// MaxMagnitude is the raw gradient maximum used for normalization.
	MaxMagnitude float64 `json:"max_magnitude"`
}

func (s *Server) handlePixmapSobel(args json.RawMessage) (interface{}, error) {
	var a pixmapSobelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Input == "" || a.Output == "" {
		return nil, fmt.Errorf("input and output are required")
	}
	enc, err := pixmap.ParseEncoding(a.Encoding)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Input)
	if err != nil {
		return nil, err
	}
	mags, err := sobel.Magnitudes(img)
	if err != nil {
		return nil, err
	}
	out, err := sobel.Quantize(mags, img.Width, img.Height)
	if err != nil {
		return nil, err
	}

	if err := pixmap.WriteFile(a.Output, out, enc); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Output)

	return &SobelResult{
		Input:        a.Input,
		Output:       a.Output,
		Width:        out.Width,
		Height:       out.Height,
		MaxValue:     out.MaxValue,
		Encoding:     enc.String(),
		MaxMagnitude: sobel.MaxMagnitude(mags),
	}, nil
}

// handlePixmapImport converts a general raster image to a pixel map. The
// result is 8-bit regardless of the source depth.
func (s *Server) handlePixmapImport(args json.RawMessage) (interface{}, error) {
	var a pixmapSobelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Input == "" || a.Output == "" {
		return nil, fmt.Errorf("input and output are required")
	}
	enc, err := pixmap.ParseEncoding(a.Encoding)
	if err != nil {
		return nil, err
	}

	src, err := imaging.Open(a.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	img, err := pixmap.FromImage(src)
	if err != nil {
		return nil, err
	}
	if err := pixmap.WriteFile(a.Output, img, enc); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Output)

	return pixmap.LoadInfo(s.cache, a.Output)
}

type pixmapCompareArgs struct {
	Actual    string `json:"actual"`
	Reference string `json:"reference"`
	Limit     int    `json:"limit"`
}

// CompareResult carries one comparison report and its printed form.
type CompareResult struct {
	Report *golden.Report `json:"report"`
	Passed bool           `json:"passed"`
	Text   string         `json:"text"`
}

func (s *Server) handlePixmapCompare(args json.RawMessage) (interface{}, error) {
	var a pixmapCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Limit == 0 {
		a.Limit = golden.DefaultLimit
	}

	report, err := golden.Compare(a.Actual, a.Reference, a.Limit)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	report.WriteTo(&buf)
	return &CompareResult{Report: report, Passed: report.Passed(), Text: buf.String()}, nil
}

type pixmapCompareSuiteArgs struct {
	Path string `json:"path"`
}

// SuiteResult carries every report of a suite run. Pairs that could not be
// compared (for example a missing file) are listed in Errors.
type SuiteResult struct {
	Reports []*golden.Report `json:"reports"`
	Errors  []string         `json:"errors,omitempty"`
	Passed  bool             `json:"passed"`
	Text    string           `json:"text"`
}

func (s *Server) handlePixmapCompareSuite(args json.RawMessage) (interface{}, error) {
	var a pixmapCompareSuiteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	suite, err := golden.LoadSuite(a.Path)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	reports, runErr := suite.Run(&buf)

	result := &SuiteResult{Reports: reports, Passed: runErr == nil, Text: buf.String()}
	if runErr != nil {
		result.Errors = append(result.Errors, runErr.Error())
	}
	for _, r := range reports {
		if !r.Passed() {
			result.Passed = false
		}
	}
	return result, nil
}
