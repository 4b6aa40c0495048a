package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded world event.
type SimLogEntry struct {
	Tick     int
	Entity   string  // label e.g. "P", "M3", "B", or "--" for world events
	Category string  // ai, projectile, player, checkpoint, boss, monster
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] M3   ai         state_change     search → approach
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-10s %-16s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// SimLog is the unbounded, machine-readable record of world events that tests
// and the headless runner query. EventLog is the on-screen view of the same
// stream.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. Verbose logs also keep per-tick samples.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records an event.
func (sl *SimLog) Add(tick int, entity, category, key, value string, num float64) {
	sl.entries = append(sl.entries, SimLogEntry{tick, entity, category, key, value, num})
}

// AddVerbose records a per-tick sample; dropped unless the log is verbose.
func (sl *SimLog) AddVerbose(tick int, entity, category, key, value string, num float64) {
	if sl.verbose {
		sl.Add(tick, entity, category, key, value, num)
	}
}

func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }
func (sl *SimLog) Len() int               { return len(sl.entries) }

// where returns the entries accepted by keep, in record order.
func (sl *SimLog) where(keep func(SimLogEntry) bool) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// is matches category and key; an empty argument matches anything.
func (e SimLogEntry) is(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns entries with the given category and key ("" = any).
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.is(category, key) })
}

// FilterEntity returns one entity's entries.
func (sl *SimLog) FilterEntity(label string) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.Entity == label })
}

// FilterTickRange returns entries with from <= Tick <= to.
func (sl *SimLog) FilterTickRange(from, to int) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.Tick >= from && e.Tick <= to })
}

func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// SumCategory totals NumVal over matching entries, e.g. damage taken.
func (sl *SimLog) SumCategory(category, key string) float64 {
	var sum float64
	for _, e := range sl.Filter(category, key) {
		sum += e.NumVal
	}
	return sum
}

// LastOf returns the newest matching entry.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if e := sl.entries[i]; e.is(category, key) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether any matching entry's value contains substr.
func (sl *SimLog) HasEntry(category, key, substr string) bool {
	for _, e := range sl.entries {
		if e.is(category, key) && strings.Contains(e.Value, substr) {
			return true
		}
	}
	return false
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Format renders the whole log, one line per entry.
func (sl *SimLog) Format() string { return formatEntries(sl.entries) }

// FormatRange renders the entries between two ticks inclusive.
func (sl *SimLog) FormatRange(from, to int) string {
	return formatEntries(sl.FilterTickRange(from, to))
}

// Summary returns a short human-readable summary of the world state.
func (sl *SimLog) Summary(w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", w.Tick())

	p := w.Player()
	fmt.Fprintf(&sb, "Player: pos=(%.0f,%.0f) hp=%d/%d temp=%.0f%% mode=%s anim=%s\n",
		p.Pos().X, p.Pos().Y, p.Health.Current, p.Health.Max,
		p.Temp.Fraction()*100, p.Mode(), p.Anim.Current())

	states := map[MonsterState]int{}
	for _, m := range w.Monsters().Monsters() {
		states[m.AI.State()]++
	}
	fmt.Fprintf(&sb, "Monsters: alive=%d ", w.Monsters().Len())
	for _, s := range []MonsterState{MonsterSearch, MonsterApproach, MonsterAttack} {
		if n := states[s]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", s, n)
		}
	}
	sb.WriteByte('\n')

	if b := w.Boss(); b != nil {
		fmt.Fprintf(&sb, "Boss: anim=%s next slam in %.1fs\n", b.Anim.Current(), b.Cooldown().Remaining())
	}
	fmt.Fprintf(&sb, "Particles: land=%d water=%d collision=%d projectiles=%d\n",
		w.LandFX().Len(), w.WaterFX().Len(), w.Collision().Len(), w.Projectiles().Len())
	fmt.Fprintf(&sb, "Checkpoint: %d  deaths=%d  kills=%d\n",
		w.Level().ActiveCheckpoint(),
		sl.CountCategory("player", "death"),
		sl.CountCategory("monster", "death"))
	return sb.String()
}
