package session

// Clock counts whole seconds for the session and for the current exercise.
// It has no time source of its own: the host calls Tick once per second
// while the session view is open.
type Clock struct {
	running  bool
	total    int
	exercise int
}

func (c *Clock) Start() { c.running = true }

func (c *Clock) Pause() { c.running = false }

func (c *Clock) Running() bool { return c.running }

// Tick advances both counters when running and reports whether it did.
func (c *Clock) Tick() bool {
	if !c.running {
		return false
	}
	c.total++
	c.exercise++
	return true
}

func (c *Clock) ResetExercise() { c.exercise = 0 }

func (c *Clock) Total() int { return c.total }

func (c *Clock) ExerciseElapsed() int { return c.exercise }

func (c *Clock) Minutes() int { return c.total / 60 }
