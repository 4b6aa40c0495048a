package game

// Health is an integer hit-point pool clamped to [0, Max].
type Health struct {
	Current int
	Max     int
}

// NewHealth returns a full pool.
func NewHealth(maxHP int) *Health {
	return &Health{Current: maxHP, Max: maxHP}
}

// Damage subtracts amount, never below zero.
func (h *Health) Damage(amount int) {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
}

// Heal adds amount, never above Max.
func (h *Health) Heal(amount int) {
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

func (h *Health) Alive() bool { return h.Current > 0 }

// Fraction returns Current/Max.
func (h *Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}
