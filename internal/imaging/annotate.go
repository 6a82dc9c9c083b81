package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// outlinePalette cycles through distinguishable colors for adjacent sections.
var outlinePalette = []color.RGBA{
	{230, 57, 70, 255},
	{29, 53, 87, 255},
	{42, 157, 143, 255},
	{244, 162, 97, 255},
	{131, 56, 236, 255},
}

// Annotate draws an outline for every rectangle on a PNG screenshot and
// returns the new PNG.
func Annotate(png []byte, rects []image.Rectangle) ([]byte, error) {
	img, err := Decode(png)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	for i, r := range rects {
		drawRect(canvas, r, outlinePalette[i%len(outlinePalette)], 3)
	}
	return Encode(canvas)
}

func drawRect(img *image.RGBA, r image.Rectangle, c color.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		x1, y1 := r.Min.X+t, r.Min.Y+t
		x2, y2 := r.Max.X-1-t, r.Max.Y-1-t
		if x1 > x2 || y1 > y2 {
			return
		}
		drawLine(img, x1, y1, x2, y1, c)
		drawLine(img, x2, y1, x2, y2, c)
		drawLine(img, x2, y2, x1, y2, c)
		drawLine(img, x1, y2, x1, y1, c)
	}
}

// drawLine draws a line between two points using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		setPixelSafe(img, x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func setPixelSafe(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		img.Set(x, y, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
