package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/config"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/imaging"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/logging"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/pipeline"
)

func newTestServer() *Server {
	cfg := config.Default()
	cfg.RowScan.MaxCandidates = 22
	cfg.ColumnScan.MaxCandidates = 8
	logger := logging.Discard()
	return New(pipeline.New(cfg, pipeline.WithLogger(logger)), imaging.DefaultAnnotationStyle(), logger)
}

func fillRect(img *image.Gray, r image.Rectangle) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
}

func createPaper(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// createForm draws a 700x440 form with horizontal lines at y = 15 + 40k,
// vertical lines at x = 20, 200 and 680, and a question separator at x = 400.
// Every field is answered correctly; when markQ3 is false the third question
// is left blank.
func createForm(markQ3 bool) *image.Gray {
	img := createPaper(700, 440)
	for k := 0; k <= 10; k++ {
		y := 15 + 40*k
		fillRect(img, image.Rect(20, y, 681, y+1))
	}
	for _, x := range []int{20, 200, 680} {
		fillRect(img, image.Rect(x, 15, x+1, 416))
	}
	fillRect(img, image.Rect(400, 255, 401, 375))

	write := func(p, x, n int) int {
		top := 15 + 40*p + 10
		for i := 0; i < n; i++ {
			fillRect(img, image.Rect(x, top, x+8, top+16))
			x += 12
		}
		return x
	}
	base := func(p int) int { return 220 + 17*p }

	x := write(1, base(1), 4)
	write(1, x-4+30, 5)
	write(2, base(2), 2)
	write(3, base(3), 10)
	write(4, base(4), 8)
	write(6, base(6), 1)
	write(7, base(7), 1)
	if markQ3 {
		write(8, base(8), 1)
	}
	write(9, base(9), 5)
	return img
}

// writeTestPNG encodes img into a PNG file inside a per-test temp dir.
func writeTestPNG(t *testing.T, name string, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool runs a tools/call request and decodes the JSON text content into
// out. It fails the test on a JSON-RPC error.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}, out interface{}) {
	t.Helper()

	resp := s.handleRequest(toolRequest(t, name, args))
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %v", content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), out); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
}

func toolRequest(t *testing.T, name string, args map[string]interface{}) *MCPRequest {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatal(err)
	}
	return &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	}
}
