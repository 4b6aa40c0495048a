package game

// MonsterState is the water monster's behaviour state.
type MonsterState uint8

const (
	MonsterSearch   MonsterState = iota // target out of range, hold still
	MonsterApproach                     // close in horizontally
	MonsterAttack                       // hold range and throw
)

func (s MonsterState) String() string {
	switch s {
	case MonsterSearch:
		return "search"
	case MonsterApproach:
		return "approach"
	case MonsterAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// AIConfig holds the distance thresholds of the monster state machine.
type AIConfig struct {
	SearchRadius float64
	AttackRadius float64
	// HoldFrac is the fraction of AttackRadius the monster tries to keep.
	HoldFrac float64
}

// DefaultAIConfig returns the standard water monster thresholds.
func DefaultAIConfig() AIConfig {
	return AIConfig{SearchRadius: 600, AttackRadius: 300, HoldFrac: 0.9}
}

type aiTransition struct {
	from MonsterState
	when func(dist float64, c AIConfig) bool
	to   MonsterState
}

func withinAttack(d float64, c AIConfig) bool { return d < c.AttackRadius }
func withinSearch(d float64, c AIConfig) bool { return d < c.SearchRadius }
func beyondSearch(d float64, c AIConfig) bool { return d > c.SearchRadius }
func beyondAttack(d float64, c AIConfig) bool { return d > c.AttackRadius }

// monsterTransitions is evaluated top to bottom; the first rule whose from
// matches and whose condition holds fires.
var monsterTransitions = []aiTransition{
	{MonsterSearch, withinAttack, MonsterAttack},
	{MonsterSearch, withinSearch, MonsterApproach},
	{MonsterApproach, beyondSearch, MonsterSearch},
	{MonsterApproach, withinAttack, MonsterAttack},
	{MonsterAttack, beyondSearch, MonsterSearch},
	{MonsterAttack, beyondAttack, MonsterApproach},
}

// NextMonsterState applies the transition table once.
func NextMonsterState(s MonsterState, dist float64, c AIConfig) MonsterState {
	for _, t := range monsterTransitions {
		if t.from == s && t.when(dist, c) {
			return t.to
		}
	}
	return s
}

// AIOutput is what the state machine asks the body to do this tick.
type AIOutput struct {
	Move   Vec2 // X in [-1,1]; Y < 0 is a jump or swim-up request
	Attack bool
}

// MonsterOutput maps a state and the offset to the target onto intent.
func MonsterOutput(s MonsterState, offset Vec2, c AIConfig) AIOutput {
	switch s {
	case MonsterApproach:
		return AIOutput{Move: Vec2{X: sign(offset.X)}}
	case MonsterAttack:
		dir := sign(offset.X)
		if offset.Len() < c.AttackRadius*c.HoldFrac {
			dir = -dir
		}
		return AIOutput{Move: Vec2{X: dir}, Attack: true}
	}
	return AIOutput{}
}

// MonsterAI drives one monster. The entity owns attack cooldowns; the AI only
// reports intent.
type MonsterAI struct {
	cfg   AIConfig
	state MonsterState
	out   AIOutput
	probe Rect
}

// NewMonsterAI starts in Search.
func NewMonsterAI(cfg AIConfig) *MonsterAI {
	return &MonsterAI{cfg: cfg, state: MonsterSearch}
}

// Update evaluates one tick and reports whether the state changed. Out of the
// water a blocked foot probe raises a jump; submerged, vertical intent follows
// the target's depth.
func (ai *MonsterAI) Update(pos, target Vec2, colliders []Rect, submerged bool) bool {
	offset := target.Sub(pos)
	prev := ai.state
	ai.state = NextMonsterState(ai.state, offset.Len(), ai.cfg)
	ai.out = MonsterOutput(ai.state, offset, ai.cfg)

	ai.probe = Rect{X: pos.X + ai.out.Move.X*20, Y: pos.Y - 20, W: 5, H: 10}
	if submerged {
		ai.out.Move.Y = sign(offset.Y)
	} else if Overlapping(ai.probe, colliders) {
		ai.out.Move.Y = -1
	}
	return ai.state != prev
}

func (ai *MonsterAI) State() MonsterState { return ai.state }
func (ai *MonsterAI) Movement() Vec2      { return ai.out.Move }
func (ai *MonsterAI) WantsAttack() bool   { return ai.out.Attack }
func (ai *MonsterAI) Probe() Rect         { return ai.probe }
func (ai *MonsterAI) Config() AIConfig    { return ai.cfg }
