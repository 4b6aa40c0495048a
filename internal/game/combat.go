package game

import (
	"math"

	"github.com/solarlune/resolv"
)

// --- Combat constants ---

const (
	combatCellSize   = 32   // resolv broadphase cell in world units
	hitCircleRadius  = 10.0 // damage circle left by a colliding stream particle
	hitMarkerTicks   = 12   // ticks a hit marker stays on screen
	playerHitShake   = 0.3  // camera shake seconds when the player is hit
	combatBoundsSlop = 4.0  // padding around the broadphase space
)

var (
	tagMonster = resolv.NewTag("monster")
	tagPlayer  = resolv.NewTag("player")
)

// HitMarker is a short-lived debug/feedback mark where damage landed.
type HitMarker struct {
	Pos  Vec2
	R    float64
	Life int
}

// CombatRouter routes damage shapes to the entities they touch. A fresh
// resolv space is built per query, offset so every coordinate is positive.
type CombatRouter struct {
	markers []HitMarker
}

// NewCombatRouter creates an empty router.
func NewCombatRouter() *CombatRouter { return &CombatRouter{} }

// Markers returns live hit markers.
func (cr *CombatRouter) Markers() []HitMarker { return cr.markers }

// Tick ages hit markers, dropping expired ones.
func (cr *CombatRouter) Tick() {
	kept := cr.markers[:0]
	for _, m := range cr.markers {
		m.Life--
		if m.Life > 0 {
			kept = append(kept, m)
		}
	}
	cr.markers = kept
}

func (cr *CombatRouter) mark(c Circle) {
	cr.markers = append(cr.markers, HitMarker{Pos: c.Center, R: c.R, Life: hitMarkerTicks})
}

// combatSpace wraps a resolv space over a world-space bounding box.
type combatSpace struct {
	space  *resolv.Space
	origin Vec2
}

func newCombatSpace(bounds Rect) combatSpace {
	bounds = bounds.Inflate(combatBoundsSlop)
	w := int(math.Ceil(bounds.W)) + combatCellSize
	h := int(math.Ceil(bounds.H)) + combatCellSize
	return combatSpace{
		space:  resolv.NewSpace(w, h, combatCellSize, combatCellSize),
		origin: Vec2{bounds.X, bounds.Y},
	}
}

func (cs combatSpace) addRect(r Rect, tag resolv.Tags) resolv.IShape {
	sh := resolv.NewRectangleFromTopLeft(r.X-cs.origin.X, r.Y-cs.origin.Y, r.W, r.H)
	sh.Tags().Set(tag)
	cs.space.Add(sh)
	return sh
}

func (cs combatSpace) addCircle(c Circle) *resolv.Circle {
	sh := resolv.NewCircle(c.Center.X-cs.origin.X, c.Center.Y-cs.origin.Y, c.R)
	cs.space.Add(sh)
	return sh
}

// touching calls fn for every shape tagged tag that sh intersects.
func touching(sh *resolv.Circle, tag resolv.Tags, fn func(other resolv.IShape)) {
	sh.IntersectionTest(resolv.IntersectionTestSettings{
		TestAgainst: sh.SelectTouchingCells(0).FilterShapes().ByTags(tag),
		OnIntersect: func(set resolv.IntersectionSet) bool {
			fn(set.OtherShape)
			return true
		},
	})
}

func boundsOf(rects []Rect, circles []Circle) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(r Rect) {
		minX = math.Min(minX, r.Left())
		minY = math.Min(minY, r.Top())
		maxX = math.Max(maxX, r.Right())
		maxY = math.Max(maxY, r.Bottom())
	}
	for _, r := range rects {
		grow(r)
	}
	for _, c := range circles {
		grow(c.Bounds())
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// HeatByMonster counts, per monster id, how many heat circles touch the
// monster's centroid damage collider.
func (cr *CombatRouter) HeatByMonster(circles []Circle, monsters []*WaterMonster) map[int]int {
	if len(circles) == 0 || len(monsters) == 0 {
		return nil
	}
	rects := make([]Rect, len(monsters))
	for i, m := range monsters {
		rects[i] = m.DamageCollider()
	}
	cs := newCombatSpace(boundsOf(rects, circles))
	owner := make(map[resolv.IShape]int, len(monsters))
	for i, m := range monsters {
		owner[cs.addRect(rects[i], tagMonster)] = m.ID
	}

	heat := make(map[int]int)
	for _, c := range circles {
		hit := false
		touching(cs.addCircle(c), tagMonster, func(other resolv.IShape) {
			heat[owner[other]]++
			hit = true
		})
		if hit {
			cr.mark(c)
		}
	}
	return heat
}

// PlayerDamage sums the damage of projectile hits touching the player rect.
func (cr *CombatRouter) PlayerDamage(hits []ProjectileHit, player Rect) int {
	if len(hits) == 0 {
		return 0
	}
	circles := make([]Circle, len(hits))
	for i, h := range hits {
		circles[i] = h.Area
	}
	cs := newCombatSpace(boundsOf([]Rect{player}, circles))
	cs.addRect(player, tagPlayer)

	total := 0
	for i, h := range hits {
		hit := false
		touching(cs.addCircle(circles[i]), tagPlayer, func(resolv.IShape) { hit = true })
		if hit {
			total += h.Damage
			cr.mark(h.Area)
		}
	}
	return total
}
