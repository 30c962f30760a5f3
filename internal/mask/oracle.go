package mask

import (
	"container/list"
	"math"
	"sync"

	"github.com/vertyco/botbattle/internal/geom"
)

// Result is the tri-state answer to a silhouette query. NoMask tells the
// caller to fall back to a circular-radius test; a query never fails.
type Result int

const (
	NoMask Result = iota
	Miss
	Hit
)

// angleStep is the rotation quantization in degrees. 360/angleStep distinct
// rotated grids exist per plating.
const angleStep = 5

// rotCacheCap bounds rotated-grid entries per plating. 72 covers the full
// quantized circle, so eviction only matters if the step ever shrinks.
const rotCacheCap = 360 / angleStep

type platingEntry struct {
	base *Bitmap

	rotated map[int]*list.Element
	order   *list.List // front = most recently used
}

type rotEntry struct {
	angle int
	grid  *Bitmap
}

// Oracle answers point-in-silhouette queries against rotated plating
// masks. Safe for concurrent use so parallel battle runs can share one
// instance over the same plating catalog.
type Oracle struct {
	mu       sync.RWMutex
	platings map[string]*platingEntry
}

func NewOracle() *Oracle {
	return &Oracle{platings: map[string]*platingEntry{}}
}

// Register installs the base occupancy grid for a plating id, replacing
// any previous one along with its rotation cache.
func (o *Oracle) Register(platingID string, base *Bitmap) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.platings[platingID] = &platingEntry{
		base:    base,
		rotated: map[int]*list.Element{},
		order:   list.New(),
	}
}

// Has reports whether a base grid exists for the plating id.
func (o *Oracle) Has(platingID string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.platings[platingID]
	return ok
}

// QuantizeDeg snaps an angle to the nearest cache step in [0, 360).
func QuantizeDeg(deg float64) int {
	q := int(math.Round(geom.WrapDeg360(deg)/angleStep)) * angleStep
	return q % 360
}

// Query tests whether the world point lies inside the plating silhouette
// centered at center and rotated by deg. Returns NoMask when no grid was
// registered for the plating id.
func (o *Oracle) Query(platingID string, deg float64, world, center geom.Vec2) Result {
	grid := o.rotatedGrid(platingID, QuantizeDeg(deg))
	if grid == nil {
		return NoMask
	}
	px := int(world.X - center.X + float64(grid.W)/2)
	py := int(world.Y - center.Y + float64(grid.H)/2)
	if grid.At(px, py) {
		return Hit
	}
	return Miss
}

func (o *Oracle) rotatedGrid(platingID string, angle int) *Bitmap {
	o.mu.RLock()
	pe, ok := o.platings[platingID]
	if ok {
		if el, hit := pe.rotated[angle]; hit {
			grid := el.Value.(*rotEntry).grid
			o.mu.RUnlock()
			o.touch(pe, angle)
			return grid
		}
	}
	o.mu.RUnlock()
	if !ok {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	// Another goroutine may have built it between the two locks.
	if el, hit := pe.rotated[angle]; hit {
		pe.order.MoveToFront(el)
		return el.Value.(*rotEntry).grid
	}
	grid := pe.base.Rotate(float64(angle))
	el := pe.order.PushFront(&rotEntry{angle: angle, grid: grid})
	pe.rotated[angle] = el
	for pe.order.Len() > rotCacheCap {
		oldest := pe.order.Back()
		pe.order.Remove(oldest)
		delete(pe.rotated, oldest.Value.(*rotEntry).angle)
	}
	return grid
}

func (o *Oracle) touch(pe *platingEntry, angle int) {
	o.mu.Lock()
	if el, ok := pe.rotated[angle]; ok {
		pe.order.MoveToFront(el)
	}
	o.mu.Unlock()
}
