package game

// defaultMaxedBuffer is how close to max counts as maxed.
const defaultMaxedBuffer = 0.1

// Temperature is a heat gauge that cools linearly over time. The player's gun
// uses it as an overheat limit; water monsters use it as their life.
type Temperature struct {
	Value   float64
	Max     float64
	Cooling float64 // units per second
}

// NewTemperature returns a cold gauge.
func NewTemperature(maxTemp, cooling float64) *Temperature {
	return &Temperature{Max: maxTemp, Cooling: cooling}
}

// Heat raises the temperature, capped at Max.
func (t *Temperature) Heat(amount float64) {
	t.Value += amount
	if t.Value > t.Max {
		t.Value = t.Max
	}
}

// Tick cools the gauge by Cooling*dt, never below zero.
func (t *Temperature) Tick(dt float64) {
	t.Value -= t.Cooling * dt
	if t.Value < 0 {
		t.Value = 0
	}
}

// NotMaxed reports whether the gauge is below Max by more than buffer.
func (t *Temperature) NotMaxed(buffer float64) bool {
	return t.Value < t.Max-buffer
}

// Fraction returns Value/Max.
func (t *Temperature) Fraction() float64 {
	if t.Max <= 0 {
		return 0
	}
	return t.Value / t.Max
}
