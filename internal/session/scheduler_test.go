package session

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualScheduler_FiresInOrder(t *testing.T) {
	s := NewManualScheduler()
	var fired []string
	s.AfterFunc(2*time.Second, func() { fired = append(fired, "late") })
	s.AfterFunc(time.Second, func() { fired = append(fired, "early") })

	s.Advance(500 * time.Millisecond)
	assert.Empty(t, fired)

	s.Advance(2 * time.Second)
	assert.Equal(t, []string{"early", "late"}, fired)
	assert.Zero(t, s.Pending())
}

func TestManualScheduler_EveryAndStop(t *testing.T) {
	s := NewManualScheduler()
	n := 0
	timer := s.Every(time.Second, func() { n++ })

	s.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, n)

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	s.Advance(5 * time.Second)
	assert.Equal(t, 3, n)
}

func TestManualScheduler_CallbackCanArmTimers(t *testing.T) {
	s := NewManualScheduler()
	n := 0
	var again func()
	again = func() {
		n++
		if n < 3 {
			s.AfterFunc(time.Second, again)
		}
	}
	s.AfterFunc(time.Second, again)

	s.Advance(10 * time.Second)
	assert.Equal(t, 3, n)
}

func TestRealScheduler_Every(t *testing.T) {
	var n atomic.Int32
	timer := NewScheduler().Every(5*time.Millisecond, func() { n.Add(1) })

	assert.Eventually(t, func() bool { return n.Load() >= 2 }, time.Second, time.Millisecond)
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
}

func TestRealScheduler_AfterFuncStop(t *testing.T) {
	var n atomic.Int32
	timer := NewScheduler().AfterFunc(time.Hour, func() { n.Add(1) })
	assert.True(t, timer.Stop())
	assert.Zero(t, n.Load())
}
