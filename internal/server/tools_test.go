package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"form_layout",
		"form_detect_grid",
		"form_validate",
		"form_annotate",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if tool.InputSchema["properties"] == nil {
				t.Error("InputSchema missing 'properties' field")
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "form_layout" {
			continue
		}

		t.Run(tool.Name, func(t *testing.T) {
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			hasPath := false
			for _, r := range required {
				if r == "path" {
					hasPath = true
				}
			}
			if !hasPath {
				t.Error("'path' should be required")
			}

			props := tool.InputSchema["properties"].(map[string]interface{})
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %q has no property", r)
				}
			}
		})
	}
}
