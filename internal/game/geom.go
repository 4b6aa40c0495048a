package game

import "math"

// Vec2 is a world-space point or displacement. +Y points down.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return math.Hypot(v.X-o.X, v.Y-o.Y) }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Normalize returns the unit vector in v's direction, or the zero vector when
// v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// AngledVec returns a vector of the given length rotated deg degrees from +X.
func AngledVec(deg, length float64) Vec2 {
	rad := deg * math.Pi / 180
	return Vec2{math.Cos(rad) * length, math.Sin(rad) * length}
}

// AngleDeg is the inverse of AngledVec.
func (v Vec2) AngleDeg() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Center() Vec2    { return Vec2{r.X + r.W/2, r.Y + r.H/2} }

// MidBottom is the centre of the bottom edge; bodies are positioned by it.
func (r Rect) MidBottom() Vec2 { return Vec2{r.X + r.W/2, r.Y + r.H} }

// RectMidBottom builds a w×h rect whose bottom-centre sits at p.
func RectMidBottom(p Vec2, w, h float64) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h, W: w, H: h}
}

// RectCentered builds a w×h rect centred on p.
func RectCentered(p Vec2, w, h float64) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h/2, W: w, H: h}
}

// Overlaps reports whether the interiors intersect. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains uses half-open bounds: the left/top edges are inside, right/bottom are not.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Inflate grows the rect by m on every side.
func (r Rect) Inflate(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// Circle is used for hit areas.
type Circle struct {
	Center Vec2
	R      float64
}

// OverlapsRect reports whether the circle and rect intersect.
func (c Circle) OverlapsRect(r Rect) bool {
	nx := clamp(c.Center.X, r.Left(), r.Right())
	ny := clamp(c.Center.Y, r.Top(), r.Bottom())
	dx := c.Center.X - nx
	dy := c.Center.Y - ny
	return dx*dx+dy*dy < c.R*c.R
}

// Bounds returns the circle's bounding square.
func (c Circle) Bounds() Rect {
	return Rect{X: c.Center.X - c.R, Y: c.Center.Y - c.R, W: 2 * c.R, H: 2 * c.R}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sign returns -1, 0 or 1.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
