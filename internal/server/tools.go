package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the scanned form",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "form_layout",
			Description: "Describe the configured form: field names in order, their acceptance rules, and the grid requirements used to locate them.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "form_detect_grid",
			Description: "Detect the horizontal and vertical grid lines of a scanned form and return the answer cell of every field. Reports whether enough lines were found to locate the fields.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "form_validate",
			Description: "Validate every field of a scanned form. Returns the pass/fail verdict of each field with its character count, word space and mark count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Optional form ID reported in the result. Defaults to the file name",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "form_annotate",
			Description: "Validate a scanned form and write its first field crop, labelled PASS or FAIL, as a PNG file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Path of the PNG file to write",
					},
				},
				"required": []string{"path", "output"},
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
