package mask

import "math"

// Bitmap is a binary occupancy grid derived from a plating's alpha channel.
type Bitmap struct {
	W, H  int
	cells []bool
}

// alphaSolid is the alpha threshold above which a pixel counts as plating.
const alphaSolid = 128

// NewBitmap builds an occupancy grid from an 8-bit alpha channel laid out
// row-major, w*h entries.
func NewBitmap(w, h int, alpha []uint8) *Bitmap {
	b := &Bitmap{W: w, H: h, cells: make([]bool, w*h)}
	for i := range b.cells {
		if i < len(alpha) && alpha[i] > alphaSolid {
			b.cells[i] = true
		}
	}
	return b
}

func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	return b.cells[y*b.W+x]
}

func (b *Bitmap) set(x, y int, v bool) {
	b.cells[y*b.W+x] = v
}

// Rotate returns the occupancy grid rotated by deg around its center,
// sized to the rotated bounding box. Sampling is inverse: every target
// cell maps back into the source grid, so no holes appear.
func (b *Bitmap) Rotate(deg float64) *Bitmap {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)

	w, h := float64(b.W), float64(b.H)
	rw := int(math.Ceil(math.Abs(w*cos) + math.Abs(h*sin)))
	rh := int(math.Ceil(math.Abs(w*sin) + math.Abs(h*cos)))
	if rw < 1 {
		rw = 1
	}
	if rh < 1 {
		rh = 1
	}

	out := &Bitmap{W: rw, H: rh, cells: make([]bool, rw*rh)}
	cx, cy := w/2, h/2
	rcx, rcy := float64(rw)/2, float64(rh)/2

	for y := 0; y < rh; y++ {
		for x := 0; x < rw; x++ {
			dx := float64(x) + 0.5 - rcx
			dy := float64(y) + 0.5 - rcy
			// Inverse rotation back into source space.
			sx := int(dx*cos + dy*sin + cx)
			sy := int(-dx*sin + dy*cos + cy)
			if b.At(sx, sy) {
				out.set(x, y, true)
			}
		}
	}
	return out
}

// Equal reports whether two grids have identical dimensions and occupancy.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.W != o.W || b.H != o.H {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}
