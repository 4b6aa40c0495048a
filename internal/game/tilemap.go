package game

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// TilePos is an integer (column, row) grid coordinate.
type TilePos struct {
	Col, Row int
}

func (tp TilePos) String() string { return fmt.Sprintf("%d,%d", tp.Col, tp.Row) }

// ParseTilePos parses the "col,row" form used in level files.
func ParseTilePos(s string) (TilePos, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return TilePos{}, fmt.Errorf("tile position %q: want col,row", s)
	}
	c, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return TilePos{}, fmt.Errorf("tile position %q: %w", s, err)
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return TilePos{}, fmt.Errorf("tile position %q: %w", s, err)
	}
	return TilePos{Col: c, Row: r}, nil
}

// Tile is one occupied grid cell. Art is referenced by name only; the image
// itself belongs to the renderer.
type Tile struct {
	Pos       TilePos
	Rect      Rect
	FromSheet bool
	Name      string // standalone image name when !FromSheet
	Sheet     string // sprite sheet name when FromSheet
	Index     int    // frame within Sheet
}

// TileLayer is a sparse map of occupied cells. Lookups scan a fixed window of
// cells around a point; nothing here iterates the whole layer except Rects.
type TileLayer struct {
	tileSize float64
	tiles    map[TilePos]Tile
}

// NewTileLayer creates an empty layer for the given tile edge length.
func NewTileLayer(tileSize float64) *TileLayer {
	return &TileLayer{tileSize: tileSize, tiles: make(map[TilePos]Tile)}
}

// TileSize returns the layer's cell edge length.
func (l *TileLayer) TileSize() float64 { return l.tileSize }

// Len returns the number of occupied cells.
func (l *TileLayer) Len() int { return len(l.tiles) }

// Set places t at t.Pos, computing its rect.
func (l *TileLayer) Set(t Tile) {
	t.Rect = Rect{
		X: float64(t.Pos.Col) * l.tileSize,
		Y: float64(t.Pos.Row) * l.tileSize,
		W: l.tileSize,
		H: l.tileSize,
	}
	l.tiles[t.Pos] = t
}

// Remove clears a cell. Removing an empty cell is a no-op.
func (l *TileLayer) Remove(tp TilePos) {
	delete(l.tiles, tp)
}

// At returns the tile at tp.
func (l *TileLayer) At(tp TilePos) (Tile, bool) {
	t, ok := l.tiles[tp]
	return t, ok
}

// RectAt returns the collider at tp.
func (l *TileLayer) RectAt(tp TilePos) (Rect, bool) {
	t, ok := l.tiles[tp]
	return t.Rect, ok
}

// TilePosOf converts a world position to the cell that contains it.
func (l *TileLayer) TilePosOf(p Vec2) TilePos {
	return TilePos{
		Col: int(math.Floor(p.X / l.tileSize)),
		Row: int(math.Floor(p.Y / l.tileSize)),
	}
}

// Around returns colliders in the (2r+1)² window of cells centred on p's cell.
func (l *TileLayer) Around(p Vec2, r int) []Rect {
	return l.AroundInto(nil, p, r)
}

// AroundInto appends Around's result to dst. Hot loops reuse dst.
func (l *TileLayer) AroundInto(dst []Rect, p Vec2, r int) []Rect {
	c := l.TilePosOf(p)
	for row := c.Row - r; row <= c.Row+r; row++ {
		for col := c.Col - r; col <= c.Col+r; col++ {
			if t, ok := l.tiles[TilePos{col, row}]; ok {
				dst = append(dst, t.Rect)
			}
		}
	}
	return dst
}

// Overlapping returns colliders in every cell touched by rect grown by margin
// cells on each side.
func (l *TileLayer) Overlapping(rect Rect, margin int) []Rect {
	lo := l.TilePosOf(Vec2{rect.Left(), rect.Top()})
	hi := l.TilePosOf(Vec2{rect.Right(), rect.Bottom()})
	var out []Rect
	for row := lo.Row - margin; row <= hi.Row+margin; row++ {
		for col := lo.Col - margin; col <= hi.Col+margin; col++ {
			if t, ok := l.tiles[TilePos{col, row}]; ok {
				out = append(out, t.Rect)
			}
		}
	}
	return out
}

// Tiles returns all tiles ordered by row then column.
func (l *TileLayer) Tiles() []Tile {
	out := make([]Tile, 0, len(l.tiles))
	for _, t := range l.tiles {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Row != out[j].Pos.Row {
			return out[i].Pos.Row < out[j].Pos.Row
		}
		return out[i].Pos.Col < out[j].Pos.Col
	})
	return out
}

// Rects returns every collider in the layer in Tiles order.
func (l *TileLayer) Rects() []Rect {
	tiles := l.Tiles()
	out := make([]Rect, len(tiles))
	for i, t := range tiles {
		out[i] = t.Rect
	}
	return out
}

// MergeLayers builds a combined collision layer. Later layers win on overlap.
// Nil layers are skipped.
func MergeLayers(tileSize float64, layers ...*TileLayer) *TileLayer {
	out := NewTileLayer(tileSize)
	for _, l := range layers {
		if l == nil {
			continue
		}
		for tp, t := range l.tiles {
			out.tiles[tp] = t
		}
	}
	return out
}
