package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerOnce(t *testing.T) {
	tm := NewTimer(100*time.Millisecond, Once)

	assert.False(t, tm.Tick(50*time.Millisecond))
	assert.True(t, tm.Tick(50*time.Millisecond))
	assert.True(t, tm.Tick(10*time.Millisecond), "once timer stays finished")
	assert.Equal(t, 100*time.Millisecond, tm.Elapsed())

	tm.Reset()
	assert.False(t, tm.Finished())
	assert.Equal(t, time.Duration(0), tm.Elapsed())
}

func TestTimerRepeating(t *testing.T) {
	tm := NewTimer(50*time.Millisecond, Repeating)

	assert.False(t, tm.Tick(30*time.Millisecond))
	assert.True(t, tm.Tick(30*time.Millisecond))
	assert.Equal(t, 10*time.Millisecond, tm.Elapsed(), "repeating timer wraps")
	assert.False(t, tm.Tick(30*time.Millisecond))
	assert.False(t, tm.Finished(), "finished only on the wrapping tick")
	assert.True(t, tm.Tick(10*time.Millisecond))
	assert.Equal(t, time.Duration(0), tm.Elapsed())
}

func TestTimerIgnoresNegativeDelta(t *testing.T) {
	tm := NewTimer(50*time.Millisecond, Repeating)
	tm.Tick(20 * time.Millisecond)
	assert.False(t, tm.Tick(-time.Second))
	assert.Equal(t, 20*time.Millisecond, tm.Elapsed())
}

func TestTimerSetDuration(t *testing.T) {
	tm := NewTimer(time.Second, Repeating)
	tm.Tick(100 * time.Millisecond)
	tm.SetDuration(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, tm.Duration())
	assert.True(t, tm.Tick(0))
}
