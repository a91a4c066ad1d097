package frame

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualScheduler(t *testing.T) {
	s := NewManualScheduler()
	var order []int

	s.Schedule(func() { order = append(order, 1) })
	cancel := s.Schedule(func() { order = append(order, 2) })
	s.Schedule(func() { order = append(order, 3) })
	cancel()

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Flush())
	assert.Equal(t, []int{1, 3}, order)
	assert.Equal(t, 0, s.Flush())
}

func TestCoalescer(t *testing.T) {
	t.Run("Burst runs once", func(t *testing.T) {
		s := NewManualScheduler()
		runs := 0
		c := NewCoalescer(s, func() { runs++ })

		for i := 0; i < 10; i++ {
			c.Request()
		}
		assert.True(t, c.Pending())
		assert.Equal(t, 1, s.Len())

		s.Flush()
		assert.Equal(t, 1, runs)
		assert.False(t, c.Pending())
	})

	t.Run("Cancel drops the pending run", func(t *testing.T) {
		s := NewManualScheduler()
		runs := 0
		c := NewCoalescer(s, func() { runs++ })

		c.Request()
		c.Cancel()
		s.Flush()
		assert.Equal(t, 0, runs)
		assert.False(t, c.Pending())
	})

	t.Run("Request from inside the callback schedules the next tick", func(t *testing.T) {
		s := NewManualScheduler()
		runs := 0
		var c *Coalescer
		c = NewCoalescer(s, func() {
			runs++
			if runs == 1 {
				c.Request()
			}
		})

		c.Request()
		assert.Equal(t, 1, s.Flush())
		assert.True(t, c.Pending())
		assert.Equal(t, 1, s.Flush())
		assert.Equal(t, 2, runs)
	})

	t.Run("Timer scheduler", func(t *testing.T) {
		var runs int32
		c := NewCoalescer(NewTimerScheduler(5*time.Millisecond), func() {
			atomic.AddInt32(&runs, 1)
		})

		for i := 0; i < 5; i++ {
			c.Request()
		}
		assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 1 }, time.Second, time.Millisecond)
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
	})
}
