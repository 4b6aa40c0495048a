package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Boiling-Point/internal/logger"
)

// ErrMissingParallaxKey is returned when a level holds a tile layer that has
// no parallax mapping. Such a level cannot be drawn or simulated consistently.
var ErrMissingParallaxKey = errors.New("missing parallax key for tile layer")

// Well-known tile layers.
const (
	LayerMain  = 0 // solid terrain
	LayerWater = 1 // water surface tiles, collidable for land effects only
)

// parallaxAmount scales how far each parallax layer shifts per step.
const parallaxAmount = 0.1

// defaultParallaxKey maps tile layer → parallax layer.
var defaultParallaxKey = map[int]int{
	LayerWater: 0,
	LayerMain:  0,
	-1:         0,
	-2:         -1,
	-3:         -2,
}

// Checkpoint is a respawn circle.
type Checkpoint struct {
	ID     int
	Pos    Vec2
	Radius float64
}

// FocalPoint pulls the camera while any of its monsters is alive and the
// player is within Radius.
type FocalPoint struct {
	Pos        Vec2
	Weight     float64
	Radius     float64
	MonsterIDs []int
}

// MonsterSpawn places a water monster with a level-unique id.
type MonsterSpawn struct {
	ID  int
	Pos Vec2
}

// Level owns the tile layers and authored spawn data. Layers are read-only to
// the simulation once loaded.
type Level struct {
	tileSize    float64
	layers      map[int]*TileLayer
	parallaxKey map[int]int

	PlayerSpawn   Vec2
	Checkpoints   []Checkpoint
	FocalPoints   []FocalPoint
	MonsterSpawns []MonsterSpawn
	BossPos       Vec2
	HasBoss       bool

	activeCheckpoint int
	log              *logrus.Entry
}

// NewLevel returns an empty level holding only the main layer.
func NewLevel(tileSize float64) *Level {
	return &Level{
		tileSize:         tileSize,
		layers:           map[int]*TileLayer{LayerMain: NewTileLayer(tileSize)},
		parallaxKey:      defaultParallaxKey,
		activeCheckpoint: NoCheckpoint,
		log:              logger.Discard(),
	}
}

type levelFile struct {
	Tiles         map[string]map[string]tileJSON `json:"tiles"`
	PlayerSpawn   [2]float64                     `json:"player_spawn"`
	Checkpoints   []checkpointJSON               `json:"checkpoints,omitempty"`
	FocalPoints   []focalPointJSON               `json:"focal_points,omitempty"`
	WaterMonsters []monsterJSON                  `json:"water_monsters,omitempty"`
	BossPos       *[2]float64                    `json:"boss_pos,omitempty"`
}

type tileJSON struct {
	FromSheet bool   `json:"from_sheet"`
	TileName  string `json:"tile_name,omitempty"`
	SheetName string `json:"sheet_name,omitempty"`
	Index     int    `json:"index,omitempty"`
}

type checkpointJSON struct {
	ID     int        `json:"id"`
	Pos    [2]float64 `json:"pos"`
	Radius float64    `json:"radius"`
}

type focalPointJSON struct {
	Pos      [2]float64 `json:"pos"`
	Weight   float64    `json:"weight"`
	Radius   float64    `json:"radius"`
	Monsters []int      `json:"monsters"`
}

type monsterJSON struct {
	ID  int        `json:"id"`
	Pos [2]float64 `json:"pos"`
}

// LoadLevel reads a level file. A missing file is created holding an empty level.
// The returned level logs to log; nil drops its messages.
func LoadLevel(path string, tileSize float64, log *logrus.Entry) (*Level, error) {
	if log == nil {
		log = logger.Discard()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		lvl := NewLevel(tileSize)
		lvl.log = log
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, fmt.Errorf("create level dir: %w", mkErr)
		}
		if saveErr := lvl.Save(path); saveErr != nil {
			return nil, saveErr
		}
		log.WithField("path", path).Info("created empty level")
		return lvl, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	lvl, err := DecodeLevel(data, tileSize)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	lvl.log = log
	log.WithFields(logrus.Fields{
		"path":   path,
		"layers": len(lvl.layers),
	}).Info("level loaded")
	return lvl, nil
}

// DecodeLevel builds a level from its JSON form and validates it.
func DecodeLevel(data []byte, tileSize float64) (*Level, error) {
	var lf levelFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	lvl := NewLevel(tileSize)
	for layerStr, cells := range lf.Tiles {
		layer, err := strconv.Atoi(layerStr)
		if err != nil {
			return nil, fmt.Errorf("layer index %q: %w", layerStr, err)
		}
		tl := lvl.ensureLayer(layer)
		for posStr, tj := range cells {
			tp, err := ParseTilePos(posStr)
			if err != nil {
				return nil, err
			}
			tl.Set(Tile{Pos: tp, FromSheet: tj.FromSheet, Name: tj.TileName, Sheet: tj.SheetName, Index: tj.Index})
		}
	}
	lvl.PlayerSpawn = Vec2{lf.PlayerSpawn[0], lf.PlayerSpawn[1]}
	for _, c := range lf.Checkpoints {
		lvl.Checkpoints = append(lvl.Checkpoints, Checkpoint{ID: c.ID, Pos: Vec2{c.Pos[0], c.Pos[1]}, Radius: c.Radius})
	}
	for _, f := range lf.FocalPoints {
		lvl.FocalPoints = append(lvl.FocalPoints, FocalPoint{
			Pos: Vec2{f.Pos[0], f.Pos[1]}, Weight: f.Weight, Radius: f.Radius,
			MonsterIDs: append([]int(nil), f.Monsters...),
		})
	}
	for _, m := range lf.WaterMonsters {
		lvl.MonsterSpawns = append(lvl.MonsterSpawns, MonsterSpawn{ID: m.ID, Pos: Vec2{m.Pos[0], m.Pos[1]}})
	}
	if lf.BossPos != nil {
		lvl.BossPos = Vec2{lf.BossPos[0], lf.BossPos[1]}
		lvl.HasBoss = true
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

// Validate checks every tile layer has a parallax mapping.
func (lv *Level) Validate() error {
	for _, layer := range lv.LayerIDs() {
		if _, ok := lv.parallaxKey[layer]; !ok {
			return fmt.Errorf("%w %d", ErrMissingParallaxKey, layer)
		}
	}
	return nil
}

// Encode renders the level in its file form.
func (lv *Level) Encode() ([]byte, error) {
	lf := levelFile{
		Tiles:       make(map[string]map[string]tileJSON, len(lv.layers)),
		PlayerSpawn: [2]float64{lv.PlayerSpawn.X, lv.PlayerSpawn.Y},
	}
	for layer, tl := range lv.layers {
		cells := make(map[string]tileJSON, tl.Len())
		for _, t := range tl.Tiles() {
			tj := tileJSON{FromSheet: t.FromSheet}
			if t.FromSheet {
				tj.SheetName, tj.Index = t.Sheet, t.Index
			} else {
				tj.TileName = t.Name
			}
			cells[t.Pos.String()] = tj
		}
		lf.Tiles[strconv.Itoa(layer)] = cells
	}
	for _, c := range lv.Checkpoints {
		lf.Checkpoints = append(lf.Checkpoints, checkpointJSON{ID: c.ID, Pos: [2]float64{c.Pos.X, c.Pos.Y}, Radius: c.Radius})
	}
	for _, f := range lv.FocalPoints {
		lf.FocalPoints = append(lf.FocalPoints, focalPointJSON{
			Pos: [2]float64{f.Pos.X, f.Pos.Y}, Weight: f.Weight, Radius: f.Radius, Monsters: f.MonsterIDs,
		})
	}
	for _, m := range lv.MonsterSpawns {
		lf.WaterMonsters = append(lf.WaterMonsters, monsterJSON{ID: m.ID, Pos: [2]float64{m.Pos.X, m.Pos.Y}})
	}
	if lv.HasBoss {
		lf.BossPos = &[2]float64{lv.BossPos.X, lv.BossPos.Y}
	}
	return json.MarshalIndent(lf, "", "  ")
}

// Save writes the level atomically.
func (lv *Level) Save(path string) error {
	data, err := lv.Encode()
	if err != nil {
		return fmt.Errorf("encode level: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	lv.log.WithField("path", path).Info("level saved")
	return nil
}

func (lv *Level) ensureLayer(layer int) *TileLayer {
	tl, ok := lv.layers[layer]
	if !ok {
		tl = NewTileLayer(lv.tileSize)
		lv.layers[layer] = tl
	}
	return tl
}

// TileSize returns the tile edge length.
func (lv *Level) TileSize() float64 { return lv.tileSize }

// Layer returns the tile layer or nil when absent.
func (lv *Level) Layer(layer int) *TileLayer { return lv.layers[layer] }

// LayerIDs returns the populated layers in ascending (back to front) order.
func (lv *Level) LayerIDs() []int {
	ids := make([]int, 0, len(lv.layers))
	for id := range lv.layers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Colliders returns every collider on a layer; an absent layer yields none.
func (lv *Level) Colliders(layer int) []Rect {
	tl := lv.layers[layer]
	if tl == nil {
		return nil
	}
	return tl.Rects()
}

// TilePos converts a world position to grid coordinates.
func (lv *Level) TilePos(p Vec2) TilePos {
	return TilePos{Col: int(math.Floor(p.X / lv.tileSize)), Row: int(math.Floor(p.Y / lv.tileSize))}
}

// AddTile places a standalone-image tile.
func (lv *Level) AddTile(tp TilePos, layer int, name string) error {
	if _, ok := lv.parallaxKey[layer]; !ok {
		return fmt.Errorf("%w %d", ErrMissingParallaxKey, layer)
	}
	lv.ensureLayer(layer).Set(Tile{Pos: tp, Name: name})
	return nil
}

// AddSheetTile places a sprite-sheet tile.
func (lv *Level) AddSheetTile(tp TilePos, layer int, sheet string, index int) error {
	if _, ok := lv.parallaxKey[layer]; !ok {
		return fmt.Errorf("%w %d", ErrMissingParallaxKey, layer)
	}
	lv.ensureLayer(layer).Set(Tile{Pos: tp, FromSheet: true, Sheet: sheet, Index: index})
	return nil
}

// RemoveTile clears a cell; a layer left empty is dropped.
func (lv *Level) RemoveTile(tp TilePos, layer int) {
	tl, ok := lv.layers[layer]
	if !ok {
		return
	}
	tl.Remove(tp)
	if tl.Len() == 0 && layer != LayerMain {
		delete(lv.layers, layer)
	}
}

// ParallaxLayer returns the parallax layer a tile layer draws into.
func (lv *Level) ParallaxLayer(layer int) (int, bool) {
	pl, ok := lv.parallaxKey[layer]
	return pl, ok
}

// ParallaxScale is the draw scale of a parallax layer; deeper layers shrink.
func ParallaxScale(parallaxLayer int) float64 {
	return 1 / (1 - float64(parallaxLayer)*parallaxAmount)
}

// ParallaxOffsetY is the vertical camera shift applied to a parallax layer.
func ParallaxOffsetY(parallaxLayer int, screenH float64) float64 {
	return screenH * float64(parallaxLayer) * parallaxAmount / 2
}

// ActiveCheckpoint returns the active checkpoint id or NoCheckpoint.
func (lv *Level) ActiveCheckpoint() int { return lv.activeCheckpoint }

// SetActiveCheckpoint restores a persisted checkpoint id.
func (lv *Level) SetActiveCheckpoint(id int) { lv.activeCheckpoint = id }

// RespawnPos is the active checkpoint's position, or the level spawn.
func (lv *Level) RespawnPos() Vec2 {
	for _, c := range lv.Checkpoints {
		if c.ID == lv.activeCheckpoint {
			return c.Pos
		}
	}
	return lv.PlayerSpawn
}

// Update activates the first checkpoint the player stands in. It reports true
// only on the tick a different checkpoint becomes active.
func (lv *Level) Update(playerPos Vec2) bool {
	for _, c := range lv.Checkpoints {
		if c.ID == lv.activeCheckpoint {
			continue
		}
		if playerPos.Dist(c.Pos) < c.Radius {
			lv.activeCheckpoint = c.ID
			lv.log.WithField("checkpoint", c.ID).Debug("checkpoint activated")
			return true
		}
	}
	return false
}

// CurrentFocalPoint returns the first focal point covering playerPos that
// still has a living monster.
func (lv *Level) CurrentFocalPoint(playerPos Vec2, alive func(id int) bool) (FocalPoint, bool) {
	for _, f := range lv.FocalPoints {
		if playerPos.Dist(f.Pos) >= f.Radius {
			continue
		}
		for _, id := range f.MonsterIDs {
			if alive(id) {
				return f, true
			}
		}
	}
	return FocalPoint{}, false
}

