package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunLater_FiresOnce(t *testing.T) {
	s := New()
	fired := 0
	s.RunLater(3, func() { fired++ })

	s.Advance(2)
	assert.Equal(t, 0, fired)

	s.Advance(1)
	assert.Equal(t, 1, fired)

	s.Advance(10)
	assert.Equal(t, 1, fired)
}

func TestRunLater_ZeroDelayFiresNextTick(t *testing.T) {
	s := New()
	fired := 0
	s.RunLater(0, func() { fired++ })

	s.Advance(1)
	assert.Equal(t, 1, fired)
}

func TestRunEvery_Period(t *testing.T) {
	s := New()
	fired := 0
	s.RunEvery(2, 5, func() { fired++ })

	s.Advance(1)
	assert.Equal(t, 0, fired)
	s.Advance(1)
	assert.Equal(t, 1, fired)
	s.Advance(4)
	assert.Equal(t, 1, fired)
	s.Advance(1)
	assert.Equal(t, 2, fired)
	s.Advance(10)
	assert.Equal(t, 4, fired)
}

func TestTask_Cancel(t *testing.T) {
	s := New()
	fired := 0
	task := s.RunEvery(1, 1, func() { fired++ })

	s.Advance(3)
	assert.Equal(t, 3, fired)

	task.Cancel()
	s.Advance(3)
	assert.Equal(t, 3, fired)

	// Cancelling twice is harmless
	task.Cancel()
}

func TestTask_SelfCancelFromCallback(t *testing.T) {
	s := New()
	fired := 0
	var task *Task
	task = s.RunEvery(1, 1, func() {
		fired++
		if fired == 2 {
			task.Cancel()
		}
	})

	s.Advance(10)
	assert.Equal(t, 2, fired)
}

func TestCallbackCanSchedule(t *testing.T) {
	s := New()
	var order []string
	s.RunLater(1, func() {
		order = append(order, "outer")
		s.RunLater(2, func() {
			order = append(order, "inner")
		})
	})

	s.Advance(2)
	assert.Equal(t, []string{"outer"}, order)
	s.Advance(1)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestAdvance_OrdersByDueTick(t *testing.T) {
	s := New()
	var order []int
	s.RunLater(5, func() { order = append(order, 5) })
	s.RunLater(2, func() { order = append(order, 2) })
	s.RunLater(4, func() { order = append(order, 4) })

	s.Advance(6)
	assert.Equal(t, []int{2, 4, 5}, order)
}
