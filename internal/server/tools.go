package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "pixmap_load",
			Description: "Load a P2 or P5 pixel-map file and return its dimensions, max value and encoding.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the pixel-map file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pixmap_sobel",
			Description: "Compute the normalized Sobel gradient magnitude of a pixel-map file and write it as an 8-bit pixel map.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source pixel-map file",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the file to write (overwritten if present)",
					},
					"encoding": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"binary", "ascii"},
						"description": "Output encoding: binary (P5) or ascii (P2, one sample per line)",
						"default":     "binary",
					},
				},
				"required": []string{"input", "output"},
			},
		},
		{
			Name:        "pixmap_import",
			Description: "Convert any PNG, JPEG, GIF, BMP or TIFF image to an 8-bit grayscale pixel map.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the pixel-map file to write (overwritten if present)",
					},
					"encoding": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"binary", "ascii"},
						"description": "Output encoding: binary (P5) or ascii (P2, one sample per line)",
						"default":     "binary",
					},
				},
				"required": []string{"input", "output"},
			},
		},
		{
			Name:        "pixmap_compare",
			Description: "Compare a computed pixel-map file with a golden reference line by line, skipping the 3-line header.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"actual": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the computed file",
					},
					"reference": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the golden reference file",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Stop after this many mismatches (default 5)",
						"default":     5,
					},
				},
				"required": []string{"actual", "reference"},
			},
		},
		{
			Name:        "pixmap_compare_suite",
			Description: "Run every comparison listed in a YAML regression suite file, in order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the suite file",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
