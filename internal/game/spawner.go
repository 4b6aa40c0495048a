package game

// SpawnerShape selects where a spawner places new particles.
type SpawnerShape uint8

const (
	SpawnPoint  SpawnerShape = iota // at the anchor, aimed by AngleRange
	SpawnCircle                     // inside Radius, flung outward
	SpawnRect                       // inside Size, aimed by AngleRange
)

func (s SpawnerShape) String() string {
	switch s {
	case SpawnPoint:
		return "point"
	case SpawnCircle:
		return "circle"
	case SpawnRect:
		return "rect"
	default:
		return "unknown"
	}
}

// Spawner emits Amount particles each time its timer elapses while Active.
// Controllers may change Active, Amount, Profile, AngleRange and
// VelocityRange between ticks to steer emission.
type Spawner struct {
	Shape   SpawnerShape
	Pos     Vec2  // anchor when not linked
	link    *Vec2 // followed anchor
	Radius  float64
	Size    Vec2
	Profile *ParticleProfile
	Amount  int
	Active  bool
	Timer   *Timer

	AngleRange          Range // degrees
	VelocityRange       Range
	RadialVelocityRange Range

	// Jitter re-rolls the cooldown and amount after each emission when set.
	CooldownJitter *Range
	AmountJitter   *[2]int
}

// NewPointSpawner emits from a single point in AngleRange.
func NewPointSpawner(pos Vec2, cooldown float64, amount int, active bool, prof *ParticleProfile, vel Range) *Spawner {
	return &Spawner{
		Shape: SpawnPoint, Pos: pos, Profile: prof, Amount: amount, Active: active,
		Timer:         NewTimer(cooldown, true),
		AngleRange:    Rng(0, 360),
		VelocityRange: vel,
	}
}

// NewCircleSpawner emits inside a circle with outward radial velocity.
func NewCircleSpawner(pos Vec2, cooldown float64, amount int, radius float64, active bool, prof *ParticleProfile, radialVel Range) *Spawner {
	return &Spawner{
		Shape: SpawnCircle, Pos: pos, Radius: radius, Profile: prof, Amount: amount, Active: active,
		Timer:               NewTimer(cooldown, true),
		AngleRange:          Rng(0, 360),
		RadialVelocityRange: radialVel,
	}
}

// NewRectSpawner emits inside a w×h area anchored at its top-left.
func NewRectSpawner(pos Vec2, cooldown float64, amount int, size Vec2, active bool, prof *ParticleProfile, vel Range) *Spawner {
	return &Spawner{
		Shape: SpawnRect, Pos: pos, Size: size, Profile: prof, Amount: amount, Active: active,
		Timer:         NewTimer(cooldown, true),
		AngleRange:    Rng(0, 360),
		VelocityRange: vel,
	}
}

// LinkPos makes the spawner follow p.
func (s *Spawner) LinkPos(p *Vec2) *Spawner {
	s.link = p
	return s
}

// WithJitter enables cooldown and amount re-rolls after each emission.
func (s *Spawner) WithJitter(cooldown Range, minAmount, maxAmount int) *Spawner {
	s.CooldownJitter = &cooldown
	s.AmountJitter = &[2]int{minAmount, maxAmount}
	return s
}

// Anchor returns the current emission anchor.
func (s *Spawner) Anchor() Vec2 {
	if s.link != nil {
		return *s.link
	}
	return s.Pos
}

func (s *Spawner) tick(dt float64, pe *ParticleEngine) {
	s.Timer.Tick(dt)
	if !s.Active || !s.Timer.Done() || s.Profile == nil {
		return
	}
	for i := 0; i < s.Amount; i++ {
		pos, vel := s.sample(pe.rnd)
		pe.push(newParticle(pe.rnd, pos, s.Profile, vel))
	}
	if s.CooldownJitter != nil {
		s.Timer.SetCooldown(UniformRange(pe.rnd, *s.CooldownJitter))
	}
	if s.AmountJitter != nil {
		s.Amount = RandInt(pe.rnd, s.AmountJitter[0], s.AmountJitter[1])
	}
	s.Timer.Start()
}

func (s *Spawner) sample(rnd Random) (Vec2, Vec2) {
	anchor := s.Anchor()
	switch s.Shape {
	case SpawnCircle:
		dir := AngledVec(UniformRange(rnd, s.AngleRange), 1)
		pos := anchor.Add(dir.Scale(Uniform(rnd, 0, s.Radius)))
		return pos, dir.Scale(UniformRange(rnd, s.RadialVelocityRange))
	case SpawnRect:
		pos := anchor.Add(Vec2{Uniform(rnd, 0, s.Size.X), Uniform(rnd, 0, s.Size.Y)})
		return pos, AngledVec(UniformRange(rnd, s.AngleRange), UniformRange(rnd, s.VelocityRange))
	default:
		return anchor, AngledVec(UniformRange(rnd, s.AngleRange), UniformRange(rnd, s.VelocityRange))
	}
}
