package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTilePos(t *testing.T) {
	tp, err := ParseTilePos("-3, 12")
	require.NoError(t, err)
	assert.Equal(t, TilePos{Col: -3, Row: 12}, tp)
	assert.Equal(t, "-3,12", tp.String())

	for _, bad := range []string{"", "1", "1,2,3", "a,2", "1,b"} {
		_, err := ParseTilePos(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestTileLayer_SetComputesRect(t *testing.T) {
	l := NewTileLayer(64)
	l.Set(Tile{Pos: TilePos{-1, 2}, Name: "rock"})

	r, ok := l.RectAt(TilePos{-1, 2})
	require.True(t, ok)
	assert.Equal(t, Rect{X: -64, Y: 128, W: 64, H: 64}, r)
	assert.Equal(t, TilePos{-1, 2}, l.TilePosOf(Vec2{-0.5, 191.9}))

	l.Remove(TilePos{-1, 2})
	l.Remove(TilePos{9, 9})
	assert.Zero(t, l.Len())
}

func TestTileLayer_AroundWindow(t *testing.T) {
	l := layerWith(10, TilePos{0, 0}, TilePos{1, 1}, TilePos{2, 2}, TilePos{5, 5})
	assert.Len(t, l.Around(Vec2{15, 15}, 1), 3)
	assert.Len(t, l.Around(Vec2{15, 15}, 0), 1)
	assert.Len(t, l.Around(Vec2{15, 15}, 4), 4)

	buf := make([]Rect, 0, 8)
	buf = l.AroundInto(buf, Vec2{55, 55}, 0)
	assert.Equal(t, []Rect{{X: 50, Y: 50, W: 10, H: 10}}, buf)
}

func TestTileLayer_OverlappingWithMargin(t *testing.T) {
	l := layerWith(10, TilePos{0, 0}, TilePos{3, 0}, TilePos{6, 0})
	rect := Rect{X: 1, Y: 1, W: 8, H: 8}
	assert.Len(t, l.Overlapping(rect, 0), 1)
	assert.Len(t, l.Overlapping(rect, 3), 2)
}

func TestTileLayer_TilesOrderedRowThenColumn(t *testing.T) {
	l := layerWith(10, TilePos{2, 1}, TilePos{0, 1}, TilePos{5, 0})
	var got []TilePos
	for _, tile := range l.Tiles() {
		got = append(got, tile.Pos)
	}
	assert.Equal(t, []TilePos{{5, 0}, {0, 1}, {2, 1}}, got)
	assert.Len(t, l.Rects(), 3)
}

func TestMergeLayers(t *testing.T) {
	a := layerWith(10, TilePos{0, 0}, TilePos{1, 0})
	b := layerWith(10, TilePos{1, 0}, TilePos{2, 0})
	m := MergeLayers(10, a, nil, b)
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, a.Len(), "inputs are not modified")
}
