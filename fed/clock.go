package fed

// ScenarioClock is a scenario time source advanced by the host scheduler.
// An optional common time reference (CTE) callback can be attached when an
// externally synchronized clock exists.
type ScenarioClock struct {
	now float64
	cte func() float64
}

// NewScenarioClock creates a clock starting at the given scenario time.
func NewScenarioClock(start float64) *ScenarioClock {
	return &ScenarioClock{now: start}
}

// Advance moves scenario time forward by dt seconds.
func (c *ScenarioClock) Advance(dt float64) { c.now += dt }

// Set jumps the clock to an absolute scenario time.
func (c *ScenarioClock) Set(t float64) { c.now = t }

// SetCTE attaches a common time reference source.
func (c *ScenarioClock) SetCTE(cte func() float64) { c.cte = cte }

// ScenarioTime returns the current scenario time. The second return is
// always true for an allocated clock; the engine substitutes its sentinel
// when no clock is attached at all.
func (c *ScenarioClock) ScenarioTime() (float64, bool) { return c.now, true }

// CTETime returns the common time reference time when a CTE source exists.
func (c *ScenarioClock) CTETime() (float64, bool) {
	if c.cte == nil {
		return 0, false
	}
	return c.cte(), true
}
