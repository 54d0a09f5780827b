package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/config"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/logging"
)

// Geometry of the synthetic form. Horizontal lines sit at y = 15 + 40k,
// vertical lines at formColumns, and the question separator at x = 400.
const (
	formWidth  = 700
	formHeight = 440
	lineTop    = 15
	lineStep   = 40
)

var formColumns = []int{20, 200, 680}

// answers describes what is written in the answer cells of a synthetic form.
type answers struct {
	name      [2]int // characters before and after the word space
	age       int
	mail      int
	studentID int
	questions [3]bool // whether each question has a mark
	comments  int
}

func validAnswers() answers {
	return answers{
		name:      [2]int{4, 5},
		age:       2,
		mail:      10,
		studentID: 8,
		questions: [3]bool{true, true, true},
		comments:  5,
	}
}

func fillRect(img *image.Gray, r image.Rectangle) {
	fillGrayRect(img, r, 0)
}

func fillGrayRect(img *image.Gray, r image.Rectangle, v uint8) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
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

func lineY(k int) int {
	return lineTop + lineStep*k
}

// writeRow draws n 8x16 characters 4 pixels apart in the answer cell of row
// pair p, starting at x. It returns the x past the last character.
func writeRow(img *image.Gray, p, x, n int) int {
	top := lineY(p) + 10
	for i := 0; i < n; i++ {
		fillRect(img, image.Rect(x, top, x+8, top+16))
		x += 12
	}
	return x
}

// createForm draws the standard form with the given answers.
//
// Row pairs 0 and 5 are headers; the fields occupy pairs 1-4 and 6-9. Each
// row starts at a different x so characters never line up across rows.
func createForm(a answers) *image.Gray {
	img := createPaper(formWidth, formHeight)

	for k := 0; k <= 10; k++ {
		fillRect(img, image.Rect(formColumns[0], lineY(k), formColumns[2]+1, lineY(k)+1))
	}
	for _, x := range formColumns {
		fillRect(img, image.Rect(x, lineY(0), x+1, lineY(10)+1))
	}
	fillRect(img, image.Rect(400, lineY(6), 401, lineY(9)))

	writeAnswers(img, a)
	return img
}

// createThickForm draws the standard form with 2 pixel lines, as printed
// forms usually come out of the scanner. Each horizontal line bleeds a light
// gray row over the left half of the page below it.
func createThickForm(a answers) *image.Gray {
	img := createPaper(formWidth, formHeight)

	for k := 0; k <= 10; k++ {
		fillGrayRect(img, image.Rect(formColumns[0], lineY(k)+2, 501, lineY(k)+3), 200)
		fillRect(img, image.Rect(formColumns[0], lineY(k), formColumns[2]+2, lineY(k)+2))
	}
	for _, x := range formColumns {
		fillRect(img, image.Rect(x, lineY(0), x+2, lineY(10)+2))
	}
	fillRect(img, image.Rect(400, lineY(6), 402, lineY(9)))

	writeAnswers(img, a)
	return img
}

// writeAnswers fills the answer cells of a form drawn by createForm or
// createThickForm.
func writeAnswers(img *image.Gray, a answers) {
	base := func(p int) int { return 220 + 17*p }

	x := writeRow(img, 1, base(1), a.name[0])
	writeRow(img, 1, x-4+30, a.name[1])
	writeRow(img, 2, base(2), a.age)
	writeRow(img, 3, base(3), a.mail)
	writeRow(img, 4, base(4), a.studentID)
	for i, marked := range a.questions {
		if marked {
			writeRow(img, 6+i, base(6+i), 1)
		}
	}
	writeRow(img, 9, base(9), a.comments)
}

// createBrokenForm draws a form with only a few horizontal lines, which is
// not enough to locate the fields.
func createBrokenForm() *image.Gray {
	img := createPaper(formWidth, formHeight)
	for k := 0; k < 4; k++ {
		fillRect(img, image.Rect(formColumns[0], lineY(k), formColumns[2]+1, lineY(k)+1))
	}
	return img
}

// testConfig returns the default configuration with scan sizes matched to
// the 1 pixel lines of createForm, each of which yields two edge lines.
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.RowScan.MaxCandidates = 22
	cfg.ColumnScan.MaxCandidates = 8
	return cfg
}

func newTestPipeline(opts ...Option) *Pipeline {
	return New(testConfig(), append([]Option{WithLogger(logging.Discard())}, opts...)...)
}

func writeTestPNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	path := filepath.Join(dir, name)
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
