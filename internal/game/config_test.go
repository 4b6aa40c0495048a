package game

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("water_level: 1200\nseed: 42\nmonster_colors: ['#112233']\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, cfg.WaterLevel)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 1600.0, cfg.Gravity, "unset fields keep defaults")
	assert.Equal(t, []string{"#112233"}, cfg.MonsterColors)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tile_size: -1\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, os.WriteFile(path, []byte("monster_colors: ['blue']\n"), 0o644))
	_, err = LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, os.WriteFile(path, []byte("gravity: [1\n"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_MonsterPalette(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MonsterColors = []string{"#ff0000", "junk", "#00ff00"}
	pal := cfg.MonsterPalette()
	require.Len(t, pal, 2)
	assert.Equal(t, uint8(255), pal[0].R)
	assert.Equal(t, uint8(255), pal[1].G)
}

func TestContext_Underwater(t *testing.T) {
	ctx := testContext(1)
	assert.False(t, ctx.Underwater(ctx.Config.WaterLevel))
	assert.True(t, ctx.Underwater(ctx.Config.WaterLevel+0.1))
}

func TestDefaultProfiles_AllNamesRegistered(t *testing.T) {
	lib := DefaultProfiles()
	for _, name := range []string{
		ProfileFlamethrower, ProfileFire, ProfileSmoke, ProfileWater, ProfileBoilingWater,
		ProfileBoiledWater, ProfileWaterVapour, ProfileWaterSplash, ProfileBubble,
	} {
		p, err := lib.Get(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, p.Colors, name)
		assert.LessOrEqual(t, p.Size.Min, p.Size.Max, name)
	}
	_, err := lib.Get("plasma")
	assert.ErrorIs(t, err, ErrUnknownProfile)
	assert.Panics(t, func() { lib.MustGet("plasma") })
}

func TestParseProfiles_OverridesAndAdds(t *testing.T) {
	lib, err := ParseProfiles([]byte(`
fire:
  colors: ['#ffffff']
  size: {min: 1, max: 2}
  gravity: [0, -50]
ember:
  colors: ['#ff8800', '#ff4400']
  size: {min: 3, max: 3}
  collidable: true
`))
	require.NoError(t, err)
	fire := lib.MustGet(ProfileFire)
	assert.Len(t, fire.Colors, 1)
	assert.Equal(t, Vec2{0, -50}, fire.Gravity)
	ember := lib.MustGet("ember")
	assert.True(t, ember.Collidable)
	assert.Equal(t, Rng(3, 3), ember.Size)
	assert.NotNil(t, lib.MustGet(ProfileBubble), "defaults survive")

	_, err = ParseProfiles([]byte("x:\n  colors: []\n"))
	assert.Error(t, err)
	_, err = ParseProfiles([]byte("x:\n  colors: ['#zzzzzz']\n"))
	assert.Error(t, err)
}

func TestRegister_CopiesColors(t *testing.T) {
	lib := NewProfileLibrary()
	p := ParticleProfile{Name: "a", Colors: []color.RGBA{rgb(10, 20, 30)}}
	lib.Register(p)
	p.Colors[0].R = 1
	assert.NotEqual(t, uint8(1), lib.MustGet("a").Colors[0].R)
}
