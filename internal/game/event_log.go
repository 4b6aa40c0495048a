package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 300
	logMaxEntries = 60
	logLineHeight = 11
)

// EventEntry is a single line in the event log.
type EventEntry struct {
	Tick     int
	Label    string // e.g. "P", "M3"
	Category string
	Message  string
}

// EventLog is a ring buffer of world events rendered on-screen.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{entries: make([]EventEntry, logMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(tick int, label, category, msg string) {
	el.entries[el.head] = EventEntry{
		Tick:     tick,
		Label:    label,
		Category: category,
		Message:  msg,
	}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Len returns the number of buffered entries.
func (el *EventLog) Len() int { return el.count }

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

func categoryColor(category string) color.RGBA {
	switch category {
	case "player":
		return color.RGBA{R: 230, G: 140, B: 60, A: 255}
	case "monster", "ai":
		return color.RGBA{R: 70, G: 130, B: 230, A: 255}
	case "boss":
		return color.RGBA{R: 200, G: 60, B: 200, A: 255}
	case "checkpoint":
		return color.RGBA{R: 80, G: 210, B: 110, A: 255}
	default:
		return color.RGBA{R: 160, G: 160, B: 160, A: 255}
	}
}

// Draw renders the log panel at panelX, newest entries at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 8, G: 12, B: 18, A: 230}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 90, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 18, G: 24, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 2)

	entries := el.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 28, G: 36, B: 56, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, categoryColor(e.Category), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d [%s] %s", e.Tick, e.Label, e.Message), panelX+12, y)
		y += logLineHeight
	}
}
