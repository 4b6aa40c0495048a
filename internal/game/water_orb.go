package game

import (
	"image/color"
	"math"
)

// Water orb tuning.
const (
	orbGravity       = 70.0
	orbAttraction    = 7.0
	orbDeflection    = 300.0
	orbMaxDeflect    = 800.0
	orbMaxSpeed      = 100.0
	orbDeflectRadius = 15.0 // same-colour orbs closer than this push apart
	orbRestRadius    = 5.0  // no attraction inside this distance
	orbXDamping      = 4.0
)

// WaterOrb is one cosmetic blob particle. It never collides with tiles.
type WaterOrb struct {
	Pos    Vec2
	Vel    Vec2
	Acc    Vec2 // X persists between ticks and is damped; Y is reset to gravity
	Size   float64
	Color  color.RGBA
	Offset Vec2 // fixed offset from the group anchor this orb is pulled toward
}

// Update advances the orb toward anchor+Offset while being pushed by deflectors.
func (o *WaterOrb) Update(dt float64, anchor Vec2, deflectors []Vec2) {
	o.Acc.Y = orbGravity

	toTarget := anchor.Add(o.Offset).Sub(o.Pos)
	dist := toTarget.Len()
	scaler := 1.0
	switch {
	case dist < orbRestRadius:
		scaler = 0
	case toTarget.Dot(o.Vel) < 0:
		// Drifting away pulls back harder.
		scaler = 3
	}
	dir := toTarget.Normalize()
	dir.X *= 0.5 * scaler
	dir.Y *= 2
	o.Acc = o.Acc.Add(dir.Scale(orbAttraction * scaler * math.Sqrt(dist)))

	for _, d := range deflectors {
		away := o.Pos.Sub(d)
		dd := away.Len()
		if dd < 1e-9 {
			continue
		}
		mag := math.Min(orbDeflection/math.Pow(dd, 1.3), orbMaxDeflect)
		o.Acc = o.Acc.Add(away.Normalize().Scale(mag))
	}

	o.Acc.X += o.Acc.X * -orbXDamping * dt
	o.Acc.X += o.Vel.X * -orbXDamping * dt

	o.Vel.X = clamp(o.Vel.X+o.Acc.X*dt, -orbMaxSpeed, orbMaxSpeed)
	o.Pos.X += o.Vel.X*dt + 0.5*o.Acc.X*dt*dt
	o.Vel.Y = clamp(o.Vel.Y+o.Acc.Y*dt, -orbMaxSpeed, orbMaxSpeed)
	o.Pos.Y += o.Vel.Y*dt + 0.5*o.Acc.Y*dt*dt
}

// OrbColorGroup is the orbs sharing one colour; only they deflect each other.
type OrbColorGroup struct {
	Color color.RGBA
	Orbs  []*WaterOrb
}

// WaterOrbGroup is a soft body anchored at a followed position plus offset.
type WaterOrbGroup struct {
	anchor  *Vec2
	offset  Vec2
	groups  []*OrbColorGroup
	scratch []Vec2
}

// WaterOrbSpec describes how a group is seeded.
type WaterOrbSpec struct {
	Offset    Vec2
	Count     int
	SizeRange Range
	AttractX  Range
	AttractY  Range
	Colors    []color.RGBA
}

// NewWaterOrbGroup seeds spec.Count orbs around *anchor+spec.Offset.
func NewWaterOrbGroup(rnd Random, anchor *Vec2, spec WaterOrbSpec) *WaterOrbGroup {
	g := &WaterOrbGroup{anchor: anchor, offset: spec.Offset}
	byColor := make(map[color.RGBA]*OrbColorGroup)
	centre := anchor.Add(spec.Offset)
	for i := 0; i < spec.Count && len(spec.Colors) > 0; i++ {
		col := spec.Colors[rnd.Intn(len(spec.Colors))]
		spawn := AngledVec(RandAngle(rnd), Uniform(rnd, 0, spec.SizeRange.Max*2))
		spawn.X *= 0.5
		orb := &WaterOrb{
			Pos:    centre.Add(spawn),
			Size:   UniformRange(rnd, spec.SizeRange),
			Color:  col,
			Offset: Vec2{UniformRange(rnd, spec.AttractX), UniformRange(rnd, spec.AttractY)},
		}
		cg, ok := byColor[col]
		if !ok {
			cg = &OrbColorGroup{Color: col}
			byColor[col] = cg
			g.groups = append(g.groups, cg)
		}
		cg.Orbs = append(cg.Orbs, orb)
	}
	return g
}

// Anchor is the point orbs are attracted toward.
func (g *WaterOrbGroup) Anchor() Vec2 { return g.anchor.Add(g.offset) }

// Groups returns the colour groups in creation order.
func (g *WaterOrbGroup) Groups() []*OrbColorGroup { return g.groups }

// Count returns the number of orbs.
func (g *WaterOrbGroup) Count() int {
	n := 0
	for _, cg := range g.groups {
		n += len(cg.Orbs)
	}
	return n
}

// Update steps every orb in place; later orbs see earlier orbs' new positions.
func (g *WaterOrbGroup) Update(dt float64) {
	anchor := g.Anchor()
	for _, cg := range g.groups {
		for _, orb := range cg.Orbs {
			g.scratch = g.scratch[:0]
			for _, other := range cg.Orbs {
				if other != orb && other.Pos.Dist(orb.Pos) < orbDeflectRadius {
					g.scratch = append(g.scratch, other.Pos)
				}
			}
			orb.Update(dt, anchor, g.scratch)
		}
	}
}

// Centroid is the mean orb position, or the anchor for an empty group.
func (g *WaterOrbGroup) Centroid() Vec2 {
	var sum Vec2
	n := 0
	for _, cg := range g.groups {
		for _, orb := range cg.Orbs {
			sum = sum.Add(orb.Pos)
			n++
		}
	}
	if n == 0 {
		return g.Anchor()
	}
	return sum.Scale(1 / float64(n))
}
