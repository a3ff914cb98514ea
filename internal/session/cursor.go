package session

// Cursor tracks the current exercise index within [0, count).
type Cursor struct {
	index int
	count int
}

func NewCursor(count int) *Cursor {
	if count < 0 {
		count = 0
	}
	return &Cursor{count: count}
}

func (c *Cursor) Index() int { return c.index }

func (c *Cursor) Count() int { return c.count }

// Next moves forward one exercise. It does not wrap.
func (c *Cursor) Next() bool {
	if c.index >= c.count-1 {
		return false
	}
	c.index++
	return true
}

func (c *Cursor) Previous() bool {
	if c.index == 0 {
		return false
	}
	c.index--
	return true
}

// JumpTo selects i directly. Out-of-range indices are ignored and selecting
// the current index is not a move.
func (c *Cursor) JumpTo(i int) bool {
	if i < 0 || i >= c.count || i == c.index {
		return false
	}
	c.index = i
	return true
}

// Grow extends the range after exercises are appended mid-session.
func (c *Cursor) Grow(n int) {
	if n > 0 {
		c.count += n
	}
}
