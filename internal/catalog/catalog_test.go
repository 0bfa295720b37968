package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyprtab/internal/wm"
)

func windows(n int) []wm.Window {
	out := make([]wm.Window, n)
	for i := range out {
		out[i] = wm.Window{
			Address: fmt.Sprintf("0x%x", i+1),
			Title:   fmt.Sprintf("window %d", i),
			Class:   "kitty",
		}
	}
	return out
}

func TestNewIsEmpty(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, -1, c.Index())
	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestReplaceKeepsIndexInRange(t *testing.T) {
	c := New()
	for _, start := range []int{0, 3, 7} {
		for l := 0; l <= 10; l++ {
			c.Replace(windows(start + 1))
			for i := 0; i < start; i++ {
				c.Advance()
			}

			c.Replace(windows(l))

			if l == 0 {
				assert.Equal(t, -1, c.Index(), "len 0")
				_, ok := c.Selected()
				assert.False(t, ok)
				continue
			}
			assert.GreaterOrEqual(t, c.Index(), 0, "len %d", l)
			assert.Less(t, c.Index(), l, "len %d", l)
		}
	}
}

func TestReplaceKeepsSelectionThatStillFits(t *testing.T) {
	c := New()
	c.Replace(windows(5))
	c.Advance()
	c.Advance()

	c.Replace(windows(4))
	assert.Equal(t, 2, c.Index())

	c.Replace(windows(2))
	assert.Equal(t, 0, c.Index())
}

func TestAdvanceIsCyclic(t *testing.T) {
	for l := 1; l <= 12; l++ {
		c := New()
		c.Replace(windows(l))
		c.Advance()
		start := c.Index()

		for i := 0; i < l; i++ {
			c.Advance()
		}
		assert.Equal(t, start, c.Index(), "len %d", l)
	}
}

func TestAdvanceOnEmptyIsNoop(t *testing.T) {
	c := New()
	assert.NotPanics(t, func() {
		c.Advance()
		c.Advance()
	})
	assert.Equal(t, -1, c.Index())
}

func TestSelectedFollowsCursor(t *testing.T) {
	c := New()
	c.Replace(windows(3))

	w, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "0x1", w.Address)

	c.Advance()
	c.Advance()
	w, _ = c.Selected()
	assert.Equal(t, "0x3", w.Address)

	c.Advance()
	w, _ = c.Selected()
	assert.Equal(t, "0x1", w.Address)
}

func TestReplaceCopiesInput(t *testing.T) {
	in := windows(2)
	c := New()
	c.Replace(in)
	in[0].Title = "mutated"

	assert.Equal(t, "window 0", c.Windows()[0].Title)

	out := c.Windows()
	out[1].Title = "mutated"
	assert.Equal(t, "window 1", c.Windows()[1].Title)
}
