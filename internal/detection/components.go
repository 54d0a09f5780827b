package detection

import (
	"image"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/imaging"
)

// Component is one connected region of ink in a binarized crop,
// approximating a handwritten character or mark.
type Component struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// Area is the number of ink pixels in the component.
	Area int `json:"area"`
}

// Right returns the first column past the component.
func (c Component) Right() int {
	return c.Left + c.Width
}

// Components binarizes crop at cutoff and returns its connected ink regions.
//
// A pixel is ink when its gray value is at or below cutoff. Pixels are
// connected through any of their 8 neighbours. Components are returned in
// raster order of their first pixel (top to bottom, then left to right).
// A blank crop has no components.
func Components(crop image.Image, cutoff uint8) []Component {
	return labelComponents(imaging.Binarize(crop, cutoff))
}

// CountCharacters returns the number of connected ink components in crop.
func CountCharacters(crop image.Image, cutoff uint8) int {
	return len(Components(crop, cutoff))
}

// labelComponents groups the non-zero pixels of a zero-origin mask into
// 8-connected components.
func labelComponents(mask *image.Gray) []Component {
	width := mask.Rect.Dx()
	height := mask.Rect.Dy()
	visited := make([]bool, width*height)

	var comps []Component
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || mask.Pix[y*mask.Stride+x] == 0 {
				continue
			}
			comps = append(comps, floodFill(mask, visited, x, y))
		}
	}
	return comps
}

// floodFill collects the component containing (startX, startY) and marks its
// pixels visited. It uses an explicit stack so large blobs cannot overflow
// the goroutine stack.
func floodFill(mask *image.Gray, visited []bool, startX, startY int) Component {
	width := mask.Rect.Dx()
	height := mask.Rect.Dy()

	minX, minY := startX, startY
	maxX, maxY := startX, startY
	area := 0

	stack := []image.Point{{X: startX, Y: startY}}
	visited[startY*width+startX] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		area++

		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				if visited[ny*width+nx] || mask.Pix[ny*mask.Stride+nx] == 0 {
					continue
				}
				visited[ny*width+nx] = true
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}

	return Component{
		Left:   minX,
		Top:    minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
		Area:   area,
	}
}
