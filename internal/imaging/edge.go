package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// EdgeOptions configures the Canny edge detector.
type EdgeOptions struct {
	// Low is the hysteresis low threshold on the 8-bit gradient scale.
	// Pixels whose gradient magnitude is at or below Low are never edges.
	Low int `yaml:"low"`

	// High is the hysteresis high threshold. Pixels above High are strong
	// edges and seed edge tracking.
	High int `yaml:"high"`

	// BlurRadius enables a Gaussian pre-blur when positive. The default of 0
	// runs the gradient directly on the scan.
	BlurRadius float64 `yaml:"blur_radius"`
}

// DefaultEdgeOptions returns the thresholds used for form grid detection.
func DefaultEdgeOptions() EdgeOptions {
	return EdgeOptions{Low: 100, High: 200}
}

// EdgeMap performs Canny edge detection on an image.
//
// The result is a grayscale image with the same size as the input (origin at
// (0,0)) where white pixels (255) are edges and black pixels (0) are not.
//
// # Algorithm
//
//  1. Grayscale conversion (optionally followed by a Gaussian blur)
//
//  2. Gradient computation: 3x3 Sobel operators for X and Y gradients,
//     magnitude = |Gx| + |Gy| on the 0-255 scale, direction = atan2(Gy, Gx)
//
//  3. Non-maximum suppression: thin edges to 1-pixel width by keeping only
//     local maxima in the gradient direction
//
//  4. Hysteresis thresholding:
//     - Pixels above High are strong edges (always kept)
//     - Pixels above Low are weak edges, kept only when connected
//     (8-connectivity, transitively) to a strong edge
//     - Everything else is discarded
func EdgeMap(img image.Image, opts EdgeOptions) *image.Gray {
	src := img
	if opts.BlurRadius > 0 {
		src = blur.Gaussian(img, opts.BlurRadius)
	}

	gray := ToGray(src)
	width := gray.Rect.Dx()
	height := gray.Rect.Dy()
	result := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return result
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					v := float64(gray.Pix[py*gray.Stride+px])
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Abs(gx) + math.Abs(gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			mag := magnitude[y][x]
			if mag == 0 {
				continue
			}

			angle := direction[y][x]
			var n1, n2 float64
			diagonal := false
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magAt(magnitude, x-1, y)
				n2 = magAt(magnitude, x+1, y)
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magAt(magnitude, x+1, y-1)
				n2 = magAt(magnitude, x-1, y+1)
				diagonal = true
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magAt(magnitude, x, y-1)
				n2 = magAt(magnitude, x, y+1)
			} else {
				n1 = magAt(magnitude, x-1, y-1)
				n2 = magAt(magnitude, x+1, y+1)
				diagonal = true
			}

			// A plateau along the gradient keeps only its first pixel.
			if mag > n1 && (mag > n2 || (!diagonal && mag == n2)) {
				suppressed[y][x] = mag
			}
		}
	}

	// Double threshold and edge tracking by hysteresis
	low := float64(opts.Low)
	high := float64(opts.High)
	stack := make([]image.Point, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if suppressed[y][x] > high {
				result.Pix[y*result.Stride+x] = 255
				stack = append(stack, image.Point{X: x, Y: y})
			}
		}
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				i := ny*result.Stride + nx
				if result.Pix[i] == 0 && suppressed[ny][nx] > low {
					result.Pix[i] = 255
					stack = append(stack, image.Point{X: nx, Y: ny})
				}
			}
		}
	}

	return result
}

// magAt returns the gradient magnitude at (x, y), or 0 outside the image.
// Treating the outside as zero lets border pixels survive suppression.
func magAt(magnitude [][]float64, x, y int) float64 {
	if y < 0 || y >= len(magnitude) || x < 0 || x >= len(magnitude[y]) {
		return 0
	}
	return magnitude[y][x]
}

// ToGray returns img as an *image.Gray with its origin at (0,0).
//
// A zero-origin *image.Gray is returned as is; anything else is converted
// with the standard luminance weights.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}

	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			gray.Pix[y*gray.Stride+x] = c.Y
		}
	}
	return gray
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
