package imaging

import (
	"image"
	"math"

	"github.com/nfnt/resize"
)

// Parity holds approximate visual similarity scores between two screenshots.
// Similarities are in [0,1]; ColorDelta is a mean RGB distance in [0,441].
type Parity struct {
	LayoutSimilarity  float64 `json:"layoutSimilarity"`
	TypographyMatch   float64 `json:"typographyMatch"`
	SpacingSimilarity float64 `json:"spacingSimilarity"`
	ColorDelta        float64 `json:"colorDelta"`
}

// Identical is the score of two equal screenshots.
var Identical = Parity{LayoutSimilarity: 1, TypographyMatch: 1, SpacingSimilarity: 1, ColorDelta: 0}

const (
	sampleWidth   = 256
	cellSize      = 16
	edgeThreshold = 24
	blankRowInk   = 0.01
)

// Compare scores how closely after reproduces before. Both images are
// resized to a common width and compared over their common height.
func Compare(before, after []byte) (Parity, error) {
	a, err := Decode(before)
	if err != nil {
		return Parity{}, err
	}
	b, err := Decode(after)
	if err != nil {
		return Parity{}, err
	}
	return CompareImages(a, b), nil
}

// CompareImages is Compare over decoded images.
func CompareImages(a, b image.Image) Parity {
	sa := sample(a)
	sb := sample(b)

	h := min(sa.h, sb.h)
	if h == 0 {
		return Parity{}
	}

	var (
		colorSum, layoutSum float64
		cells               int
	)
	for cy := 0; cy < h; cy += cellSize {
		for cx := 0; cx < sampleWidth; cx += cellSize {
			ra, ga, ba, ea := sa.cell(cx, cy, h)
			rb, gb, bb, eb := sb.cell(cx, cy, h)
			colorSum += math.Sqrt((ra-rb)*(ra-rb) + (ga-gb)*(ga-gb) + (ba-bb)*(ba-bb))
			layoutSum += math.Abs(ea - eb)
			cells++
		}
	}

	rowsA := sa.rowInk(h)
	rowsB := sb.rowInk(h)

	agree := 0
	for y := 0; y < h; y++ {
		if (rowsA[y] < blankRowInk) == (rowsB[y] < blankRowInk) {
			agree++
		}
	}

	return Parity{
		LayoutSimilarity:  1 - layoutSum/float64(cells),
		TypographyMatch:   correlation(rowsA, rowsB),
		SpacingSimilarity: float64(agree) / float64(h),
		ColorDelta:        colorSum / float64(cells),
	}
}

type sampled struct {
	h    int
	rgb  [][3]float64 // row-major, sampleWidth per row
	edge []bool
}

func sample(img image.Image) *sampled {
	scaled := resize.Resize(sampleWidth, 0, img, resize.Bilinear)
	bounds := scaled.Bounds()
	h := bounds.Dy()

	s := &sampled{
		h:    h,
		rgb:  make([][3]float64, sampleWidth*h),
		edge: make([]bool, sampleWidth*h),
	}
	lum := make([]float64, sampleWidth*h)
	for y := 0; y < h; y++ {
		for x := 0; x < sampleWidth; x++ {
			r, g, b, _ := scaled.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			px := [3]float64{float64(r >> 8), float64(g >> 8), float64(b >> 8)}
			s.rgb[y*sampleWidth+x] = px
			lum[y*sampleWidth+x] = 0.299*px[0] + 0.587*px[1] + 0.114*px[2]
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < sampleWidth; x++ {
			i := y*sampleWidth + x
			var d float64
			if x+1 < sampleWidth {
				d += math.Abs(lum[i+1] - lum[i])
			}
			if y+1 < h {
				d += math.Abs(lum[i+sampleWidth] - lum[i])
			}
			s.edge[i] = d > edgeThreshold
		}
	}
	return s
}

// cell returns the average color and edge density of the cell at (cx, cy),
// clipped to height h.
func (s *sampled) cell(cx, cy, h int) (r, g, b, edges float64) {
	n := 0
	for y := cy; y < min(cy+cellSize, h); y++ {
		for x := cx; x < min(cx+cellSize, sampleWidth); x++ {
			i := y*sampleWidth + x
			r += s.rgb[i][0]
			g += s.rgb[i][1]
			b += s.rgb[i][2]
			if s.edge[i] {
				edges++
			}
			n++
		}
	}
	if n == 0 {
		return 0, 0, 0, 0
	}
	f := float64(n)
	return r / f, g / f, b / f, edges / f
}

func (s *sampled) rowInk(h int) []float64 {
	rows := make([]float64, h)
	for y := 0; y < h; y++ {
		n := 0
		for x := 0; x < sampleWidth; x++ {
			if s.edge[y*sampleWidth+x] {
				n++
			}
		}
		rows[y] = float64(n) / sampleWidth
	}
	return rows
}

// correlation is the Pearson correlation of a and b clamped to [0,1]. Two
// flat profiles correlate fully when equal.
func correlation(a, b []float64) float64 {
	n := float64(len(a))
	if n == 0 {
		return 1
	}
	var ma, mb float64
	for i := range a {
		ma += a[i]
		mb += b[i]
	}
	ma /= n
	mb /= n

	var cov, va, vb float64
	for i := range a {
		da, db := a[i]-ma, b[i]-mb
		cov += da * db
		va += da * da
		vb += db * db
	}
	if va == 0 || vb == 0 {
		if va == vb && math.Abs(ma-mb) < 1e-9 {
			return 1
		}
		return 0
	}
	r := cov / math.Sqrt(va*vb)
	return math.Max(0, math.Min(1, r))
}
