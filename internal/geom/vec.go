package geom

import "math"

// Vec2 is a 2D vector in arena pixel space.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Len() float64    { return math.Hypot(a.X, a.Y) }
func (a Vec2) LenSq() float64  { return a.X*a.X + a.Y*a.Y }

func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

func (a Vec2) Dist(b Vec2) float64   { return a.Sub(b).Len() }
func (a Vec2) DistSq(b Vec2) float64 { return a.Sub(b).LenSq() }

func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// AngleDeg returns the bearing from a to b in degrees, 0° = east,
// increasing toward positive Y.
func (a Vec2) AngleDeg(b Vec2) float64 {
	d := b.Sub(a)
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// FromDeg returns the unit vector pointing along deg (0° = east).
func FromDeg(deg float64) Vec2 {
	r := deg * math.Pi / 180
	return Vec2{math.Cos(r), math.Sin(r)}
}

// WrapDeg180 normalizes an angle into (-180, 180].
func WrapDeg180(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// WrapDeg360 normalizes an angle into [0, 360).
func WrapDeg360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// RotateToward moves current toward desired by at most maxStep degrees,
// taking the shorter way around. All arguments in degrees.
func RotateToward(current, desired, maxStep float64) float64 {
	diff := WrapDeg180(desired - current)
	if math.Abs(diff) <= maxStep {
		return WrapDeg360(desired)
	}
	if diff > 0 {
		return WrapDeg360(current + maxStep)
	}
	return WrapDeg360(current - maxStep)
}

// PointSegDist returns the distance from p to the segment ab and whether
// the projection of p falls between a and b. A degenerate segment
// (zero length) reports ok=false.
func PointSegDist(p, a, b Vec2) (float64, bool) {
	ab := b.Sub(a)
	lenSq := ab.LenSq()
	if lenSq == 0 {
		return p.Dist(a), false
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 || t > 1 {
		return math.Min(p.Dist(a), p.Dist(b)), false
	}
	proj := a.Add(ab.Scale(t))
	return p.Dist(proj), true
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
