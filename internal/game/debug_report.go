package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

// DebugReport renders a plain-text snapshot of the world plus the last
// lastTicks ticks of recorded events.
func DebugReport(w *World, lastTicks int) string {
	if w == nil {
		return ""
	}
	if lastTicks <= 0 {
		lastTicks = 120
	}
	toTick := w.Tick()
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	cfg := w.Context().Config
	var b strings.Builder
	fmt.Fprintf(&b, "--- Boiling Point debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick_range=[%d..%d] water_level=%.0f gravity=%.0f\n\n",
		cfg.Seed, fromTick, toTick, cfg.WaterLevel, cfg.Gravity)

	p := w.Player()
	b.WriteString("== player ==\n")
	fmt.Fprintf(&b, "pos=(%.1f,%.1f) vel=(%.1f,%.1f) on_ground=%t\n",
		p.Pos().X, p.Pos().Y, p.Body.Vel.X, p.Body.Vel.Y, p.Body.OnGround)
	fmt.Fprintf(&b, "mode=%s anim=%s frame=%d flip=%t alive=%t hp=%d/%d\n",
		p.Mode(), p.Anim.Current(), p.Anim.Clip().Frame(), p.FlipX, p.Alive(), p.Health.Current, p.Health.Max)
	fmt.Fprintf(&b, "gun: temp=%.1f/%.0f can_fire=%t firing=%t aim=%.1f tip=(%.1f,%.1f) medium=%s\n\n",
		p.Temp.Value, p.Temp.Max, p.CanFire(), p.Firing(), p.AimAngle(), p.GunTip.X, p.GunTip.Y,
		w.Collision().Profile().Name)

	monsters := append([]*WaterMonster(nil), w.Monsters().Monsters()...)
	sort.Slice(monsters, func(i, j int) bool {
		return monsters[i].Pos().Dist(p.Pos()) < monsters[j].Pos().Dist(p.Pos())
	})
	fmt.Fprintf(&b, "== monsters (%d) ==\n", len(monsters))
	for _, m := range monsters {
		fmt.Fprintf(&b, "M%-3d state=%-8s pos=(%.0f,%.0f) dist=%.0f temp=%.0f%% orbs=%d move=(%.0f,%.0f)\n",
			m.ID, m.AI.State(), m.Pos().X, m.Pos().Y, m.Pos().Dist(p.Pos()),
			m.Temp.Fraction()*100, m.Orbs.Count(), m.AI.Movement().X, m.AI.Movement().Y)
	}
	b.WriteByte('\n')

	if boss := w.Boss(); boss != nil {
		b.WriteString("== boss ==\n")
		fmt.Fprintf(&b, "pos=(%.0f,%.0f) anim=%s frame=%d next_slam=%.2fs in_range=%t\n\n",
			boss.Pos().X, boss.Pos().Y, boss.Anim.Current(), boss.Anim.Clip().Frame(),
			boss.Cooldown().Remaining(), boss.InRange(p.Pos()))
	}

	b.WriteString("== effects ==\n")
	fmt.Fprintf(&b, "land=%d (spawners=%d) water=%d (spawners=%d) collision=%d projectiles=%d\n",
		w.LandFX().Len(), len(w.LandFX().Spawners()), w.WaterFX().Len(), len(w.WaterFX().Spawners()),
		w.Collision().Len(), w.Projectiles().Len())
	fmt.Fprintf(&b, "checkpoint=%d camera=(%.0f,%.0f) shaking=%t\n\n",
		w.Level().ActiveCheckpoint(), w.Camera().Pos.X, w.Camera().Pos.Y, w.Camera().Shaking())

	events := w.Log().FilterTickRange(fromTick, toTick)
	fmt.Fprintf(&b, "== events (%d) ==\n", len(events))
	if len(events) == 0 {
		b.WriteString("(none)\n")
	}
	for _, e := range events {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// copyToClipboard places text on the system clipboard.
func copyToClipboard(text string) error {
	if text == "" {
		text = " "
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy debug report: %w", err)
	}
	return nil
}
