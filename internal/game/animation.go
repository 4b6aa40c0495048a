package game

// Animation is a frame counter for one named clip. Frame is fractional so
// that gameplay can key off the integer frame index.
type Animation struct {
	Name   string
	Frames int
	FPS    float64
	Loop   bool
	frame  float64
}

// Frame returns the current integer frame index.
func (a *Animation) Frame() int { return int(a.frame) }

// Done reports whether a non-looping clip has reached its last frame.
func (a *Animation) Done() bool {
	return !a.Loop && a.frame >= float64(a.Frames-1)
}

func (a *Animation) update(dt float64) {
	a.frame += a.FPS * dt
	if a.Loop {
		for a.Frames > 0 && a.frame >= float64(a.Frames) {
			a.frame -= float64(a.Frames)
		}
		return
	}
	if last := float64(a.Frames - 1); a.frame > last {
		a.frame = last
	}
}

// AnimationSet holds named clips and tracks which one is playing.
type AnimationSet struct {
	clips   map[string]*Animation
	current string
}

// NewAnimationSet creates a set playing initial.
func NewAnimationSet(initial string, clips ...*Animation) *AnimationSet {
	as := &AnimationSet{clips: make(map[string]*Animation, len(clips)), current: initial}
	for _, c := range clips {
		as.clips[c.Name] = c
	}
	return as
}

// Current returns the playing clip's name.
func (as *AnimationSet) Current() string { return as.current }

// Clip returns the playing clip.
func (as *AnimationSet) Clip() *Animation { return as.clips[as.current] }

// Update advances the playing clip.
func (as *AnimationSet) Update(dt float64) {
	if c := as.clips[as.current]; c != nil {
		c.update(dt)
	}
}

// Switch starts name from frame zero. Switching to the playing clip is a
// no-op. It reports whether the clip changed.
func (as *AnimationSet) Switch(name string) bool {
	if name == as.current {
		return false
	}
	c, ok := as.clips[name]
	if !ok {
		return false
	}
	c.frame = 0
	as.current = name
	return true
}

// Done reports whether the playing clip has finished.
func (as *AnimationSet) Done() bool {
	c := as.clips[as.current]
	return c != nil && c.Done()
}
