package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/form"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/imaging"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "form_validate").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
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
	case "form_layout":
		return s.handleFormLayout()
	case "form_detect_grid":
		return s.handleFormDetectGrid(args)
	case "form_validate":
		return s.handleFormValidate(args)
	case "form_annotate":
		return s.handleFormAnnotate(args)
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Results ===

// LayoutResult describes the configured form.
type LayoutResult struct {
	Name                string        `json:"name"`
	Fields              []LayoutField `json:"fields"`
	MinRowBoundaries    int           `json:"min_row_boundaries"`
	MinColumnBoundaries int           `json:"min_column_boundaries"`
}

// LayoutField is one field of LayoutResult.
type LayoutField struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	MinChars int    `json:"min_chars,omitempty"`
	MaxChars int    `json:"max_chars,omitempty"`
	Space    string `json:"space,omitempty"`
}

// Region is a rectangle in form coordinates, max exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// FieldRegion locates one field's answer cell.
type FieldRegion struct {
	Name   string `json:"name"`
	Region Region `json:"region"`
}

// GridResult is the result of form_detect_grid.
type GridResult struct {
	Path    string        `json:"path"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Rows    []int         `json:"rows"`
	Columns []int         `json:"columns"`
	Located bool          `json:"located"`
	Fields  []FieldRegion `json:"fields,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// FieldVerdict is the measurement and verdict of one field.
type FieldVerdict struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Chars   int    `json:"chars"`
	Space   bool   `json:"space"`
	Marks   int    `json:"marks"`
	Warning string `json:"warning,omitempty"`
	Text    string `json:"text,omitempty"`
}

// ValidateResult is the result of form_validate.
type ValidateResult struct {
	ID     string         `json:"id"`
	Path   string         `json:"path"`
	Passed bool           `json:"passed"`
	Fields []FieldVerdict `json:"fields"`
	Error  string         `json:"error,omitempty"`
}

// AnnotateResult is the result of form_annotate.
type AnnotateResult struct {
	Path   string `json:"path"`
	Output string `json:"output"`
	Label  string `json:"label"`
	Field  string `json:"field"`
}

// === Handlers ===

type formArgs struct {
	Path   string `json:"path"`
	ID     string `json:"id"`
	Output string `json:"output"`
}

func parseFormArgs(args json.RawMessage) (formArgs, error) {
	var a formArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return a, err
	}
	if a.Path == "" {
		return a, errors.New("path is required")
	}
	return a, nil
}

func (s *Server) handleFormLayout() (interface{}, error) {
	layout := s.pipeline.Layout()
	res := LayoutResult{
		Name:                layout.Name,
		Fields:              make([]LayoutField, len(layout.Fields)),
		MinRowBoundaries:    layout.MinRowBoundaries,
		MinColumnBoundaries: layout.MinColumnBoundaries,
	}
	for i, f := range layout.Fields {
		res.Fields[i] = LayoutField{
			Name:     f.Name,
			Kind:     string(f.Rule.Kind),
			MinChars: f.Rule.MinChars,
			MaxChars: f.Rule.MaxChars,
			Space:    string(f.Rule.Space),
		}
	}
	return res, nil
}

// inspect loads the scan at a.Path through the cache and runs the pipeline
// on it. Form-level validation errors are returned in the inspection, not as
// the error.
func (s *Server) inspect(a formArgs) (*image.Gray, pipeline.Inspection, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, pipeline.Inspection{}, err
	}

	id := a.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(a.Path), filepath.Ext(a.Path))
	}

	ins, _ := s.pipeline.Inspect(id, img)
	return img, ins, nil
}

func (s *Server) handleFormDetectGrid(args json.RawMessage) (interface{}, error) {
	a, err := parseFormArgs(args)
	if err != nil {
		return nil, err
	}
	img, ins, err := s.inspect(a)
	if err != nil {
		return nil, err
	}

	res := GridResult{
		Path:    a.Path,
		Width:   img.Bounds().Dx(),
		Height:  img.Bounds().Dy(),
		Rows:    nonNil(ins.Rows),
		Columns: nonNil(ins.Columns),
	}

	if len(ins.Crops) == 0 {
		res.Error = recordError(ins.Record)
		return res, nil
	}

	assigned, err := s.pipeline.Layout().AssignFields(ins.Crops)
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}
	res.Located = true
	res.Fields = make([]FieldRegion, len(assigned))
	for i, fa := range assigned {
		r := fa.Crop.Rect
		res.Fields[i] = FieldRegion{
			Name:   fa.Field.Name,
			Region: Region{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y},
		}
	}
	return res, nil
}

func (s *Server) handleFormValidate(args json.RawMessage) (interface{}, error) {
	a, err := parseFormArgs(args)
	if err != nil {
		return nil, err
	}
	_, ins, err := s.inspect(a)
	if err != nil {
		return nil, err
	}

	rec := ins.Record
	res := ValidateResult{
		ID:     rec.ID,
		Path:   a.Path,
		Passed: rec.Passed(),
		Error:  recordError(rec),
	}

	if len(rec.Results) > 0 {
		for _, r := range rec.Results {
			v := FieldVerdict{
				Name:   r.Field,
				Passed: r.Passed,
				Chars:  r.Chars,
				Space:  r.Space,
				Marks:  r.Marks,
				Text:   rec.Text[r.Field],
			}
			if r.Warning != nil {
				v.Warning = r.Warning.Error()
			}
			res.Fields = append(res.Fields, v)
		}
		return res, nil
	}

	for _, name := range s.pipeline.Layout().FieldNames() {
		res.Fields = append(res.Fields, FieldVerdict{Name: name, Passed: rec.Verdicts[name]})
	}
	return res, nil
}

func (s *Server) handleFormAnnotate(args json.RawMessage) (interface{}, error) {
	a, err := parseFormArgs(args)
	if err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, errors.New("output is required")
	}
	_, ins, err := s.inspect(a)
	if err != nil {
		return nil, err
	}
	if len(ins.Crops) == 0 {
		return nil, fmt.Errorf("no field to annotate: %s", recordError(ins.Record))
	}

	annotated := imaging.Annotate(ins.Crops[0].Image, ins.Record.Verdicts, s.style)
	if err := imaging.SaveImage(annotated, a.Output); err != nil {
		return nil, err
	}

	label := imaging.LabelFail
	if ins.Record.Verdicts.AllPassed() {
		label = imaging.LabelPass
	}
	field := ""
	if names := s.pipeline.Layout().FieldNames(); len(names) > 0 {
		field = names[0]
	}
	return AnnotateResult{Path: a.Path, Output: a.Output, Label: label, Field: field}, nil
}

func recordError(rec form.Record) string {
	if rec.Err == nil {
		return ""
	}
	return rec.Err.Error()
}

func nonNil(b []int) []int {
	if b == nil {
		return []int{}
	}
	return b
}
