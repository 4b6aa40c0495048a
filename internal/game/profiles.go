package game

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownProfile is returned when a particle profile name is not registered.
var ErrUnknownProfile = errors.New("unknown particle profile")

// Profile names used by the simulation.
const (
	ProfileFlamethrower = "flamethrower"
	ProfileFire         = "fire"
	ProfileSmoke        = "smoke"
	ProfileWater        = "water"
	ProfileBoilingWater = "boiling_water"
	ProfileBoiledWater  = "boiled_water"
	ProfileWaterVapour  = "water_vapour"
	ProfileWaterSplash  = "water_splash"
	ProfileBubble       = "bubble"
)

// ParticleProfile is an immutable emission recipe. Every scalar range is drawn
// once per particle at spawn.
type ParticleProfile struct {
	Name       string
	Colors     []color.RGBA
	Size       Range
	SizeDecay  Range // size units lost per second
	VelDecay   Range // fraction of velocity lost per second
	Gravity    Vec2  // units/s²
	Collidable bool
	BounceX    Range
	BounceY    Range
}

// profileYAML is the on-disk shape of a profile.
type profileYAML struct {
	Colors     []string   `yaml:"colors"`
	Size       Range      `yaml:"size"`
	SizeDecay  Range      `yaml:"size_decay"`
	VelDecay   Range      `yaml:"velocity_decay"`
	Gravity    [2]float64 `yaml:"gravity"`
	Collidable bool       `yaml:"collidable"`
	BounceX    Range      `yaml:"bounce_x"`
	BounceY    Range      `yaml:"bounce_y"`
}

// ProfileLibrary is the name → profile table built at startup.
type ProfileLibrary struct {
	profiles map[string]*ParticleProfile
}

// NewProfileLibrary creates an empty library.
func NewProfileLibrary() *ProfileLibrary {
	return &ProfileLibrary{profiles: make(map[string]*ParticleProfile)}
}

// Register adds or replaces a profile.
func (pl *ProfileLibrary) Register(p ParticleProfile) {
	cp := p
	cp.Colors = append([]color.RGBA(nil), p.Colors...)
	pl.profiles[p.Name] = &cp
}

// Get returns the named profile.
func (pl *ProfileLibrary) Get(name string) (*ParticleProfile, error) {
	p, ok := pl.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// MustGet is Get for names compiled into the game; it panics on a miss.
func (pl *ProfileLibrary) MustGet(name string) *ParticleProfile {
	p, err := pl.Get(name)
	if err != nil {
		panic(err)
	}
	return p
}

// Names returns registered names in sorted order.
func (pl *ProfileLibrary) Names() []string {
	out := make([]string, 0, len(pl.profiles))
	for n := range pl.profiles {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// LoadProfiles reads a YAML document of name → profile and overlays it on the
// built-in defaults.
func LoadProfiles(path string) (*ProfileLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles %s: %w", path, err)
	}
	return ParseProfiles(data)
}

// ParseProfiles decodes YAML profile data on top of DefaultProfiles.
func ParseProfiles(data []byte) (*ProfileLibrary, error) {
	var raw map[string]profileYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	lib := DefaultProfiles()
	for name, r := range raw {
		if len(r.Colors) == 0 {
			return nil, fmt.Errorf("profile %q: no colors", name)
		}
		cols := make([]color.RGBA, 0, len(r.Colors))
		for _, hex := range r.Colors {
			c, err := parseHexColor(hex)
			if err != nil {
				return nil, fmt.Errorf("profile %q: %w", name, err)
			}
			cols = append(cols, c)
		}
		lib.Register(ParticleProfile{
			Name:       name,
			Colors:     cols,
			Size:       r.Size,
			SizeDecay:  r.SizeDecay,
			VelDecay:   r.VelDecay,
			Gravity:    Vec2{r.Gravity[0], r.Gravity[1]},
			Collidable: r.Collidable,
			BounceX:    r.BounceX,
			BounceY:    r.BounceY,
		})
	}
	return lib, nil
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("bad color %q: want #rrggbb", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

var (
	flamePalette = []color.RGBA{
		rgb(249, 194, 43), rgb(245, 125, 74), rgb(234, 79, 54), rgb(251, 107, 29), rgb(232, 59, 59),
	}
	waterPalette = []color.RGBA{rgb(0, 0, 255), rgb(173, 216, 230)}
	steamPalette = []color.RGBA{rgb(220, 230, 240), rgb(200, 214, 228), rgb(236, 240, 245)}
	smokePalette = []color.RGBA{rgb(70, 70, 70), rgb(80, 80, 80), rgb(90, 90, 90)}
)

// DefaultProfiles returns the built-in effect library.
func DefaultProfiles() *ProfileLibrary {
	lib := NewProfileLibrary()
	bounce := Rng(0, 0.1)
	bounceY := Rng(0, 0.4)
	lib.Register(ParticleProfile{
		Name: ProfileFlamethrower, Colors: flamePalette,
		Size: Rng(6, 12), SizeDecay: Rng(2, 3), VelDecay: Rng(0.2, 1),
		Gravity: Vec2{0, 600}, Collidable: true, BounceX: bounce, BounceY: bounceY,
	})
	lib.Register(ParticleProfile{
		Name: ProfileFire, Colors: flamePalette,
		Size: Rng(6, 12), SizeDecay: Rng(5, 8), VelDecay: Rng(0, 1),
		Gravity: Vec2{0, -120}, Collidable: true, BounceX: bounce, BounceY: bounceY,
	})
	lib.Register(ParticleProfile{
		Name: ProfileSmoke, Colors: smokePalette,
		Size: Rng(3, 10), SizeDecay: Rng(7, 10), VelDecay: Rng(0, 0),
		Gravity: Vec2{0, -300}, Collidable: true, BounceX: bounce, BounceY: bounceY,
	})
	lib.Register(ParticleProfile{
		Name: ProfileWater, Colors: waterPalette,
		Size: Rng(5, 11), SizeDecay: Rng(5, 8), VelDecay: Rng(0, 4),
		Gravity: Vec2{0, 300}, Collidable: true, BounceX: bounce, BounceY: bounceY,
	})
	lib.Register(ParticleProfile{
		Name: ProfileBoilingWater, Colors: steamPalette,
		Size: Rng(5, 10), SizeDecay: Rng(3, 5), VelDecay: Rng(1, 2),
		Gravity: Vec2{0, -60}, Collidable: true, BounceX: bounce, BounceY: bounceY,
	})
	lib.Register(ParticleProfile{
		Name: ProfileBoiledWater, Colors: waterPalette,
		Size: Rng(4, 10), SizeDecay: Rng(3, 6), VelDecay: Rng(1, 3),
		Gravity: Vec2{0, 400}, Collidable: true, BounceX: bounce, BounceY: bounceY,
	})
	lib.Register(ParticleProfile{
		Name: ProfileWaterVapour, Colors: steamPalette,
		Size: Rng(3, 8), SizeDecay: Rng(4, 7), VelDecay: Rng(2, 4),
		Gravity: Vec2{0, -180}, Collidable: false, BounceX: bounce, BounceY: bounceY,
	})
	lib.Register(ParticleProfile{
		Name: ProfileWaterSplash, Colors: waterPalette,
		Size: Rng(4, 9), SizeDecay: Rng(4, 6), VelDecay: Rng(0.5, 1),
		Gravity: Vec2{0, 900}, Collidable: true, BounceX: bounce, BounceY: bounceY,
	})
	lib.Register(ParticleProfile{
		Name: ProfileBubble, Colors: []color.RGBA{rgb(190, 225, 255), rgb(160, 205, 245)},
		Size: Rng(2, 5), SizeDecay: Rng(1, 2), VelDecay: Rng(1, 2),
		Gravity: Vec2{0, -240}, Collidable: true, BounceX: bounce, BounceY: bounceY,
	})
	return lib
}
