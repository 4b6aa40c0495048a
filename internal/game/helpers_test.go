package game

import (
	"io"

	"github.com/sirupsen/logrus"
)

// testContext builds a seeded context whose logger discards output.
func testContext(seed int64) *Context {
	ctx := NewContext(DefaultConfig(), NewSeededRandom(seed), nil)
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	ctx.Log = logrus.NewEntry(quiet)
	return ctx
}

// fixedRandom always returns the same fraction.
type fixedRandom struct{ f float64 }

func (r fixedRandom) Float64() float64 { return r.f }
func (r fixedRandom) Intn(n int) int   { return int(r.f * float64(n)) }

// layerWith returns a tile layer holding the given cells.
func layerWith(tileSize float64, cells ...TilePos) *TileLayer {
	l := NewTileLayer(tileSize)
	for _, c := range cells {
		l.Set(Tile{Pos: c, Name: "test"})
	}
	return l
}

// fixedProfile is a deterministic profile: every range is a single value.
func fixedProfile(name string, size, sizeDecay float64, gravity Vec2, collidable bool) *ParticleProfile {
	return &ParticleProfile{
		Name:       name,
		Size:       Rng(size, size),
		SizeDecay:  Rng(sizeDecay, sizeDecay),
		Gravity:    gravity,
		Collidable: collidable,
	}
}
