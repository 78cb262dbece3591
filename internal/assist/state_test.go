package assist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallLifecycle(t *testing.T) {
	var c Call
	assert.Equal(t, StateIdle, c.State())
	assert.False(t, c.Busy())

	c.Begin()
	assert.Equal(t, StateInFlight, c.State())
	assert.True(t, c.Busy(), "controls depending on the result stay disabled")

	c.Succeed()
	assert.Equal(t, StateSucceeded, c.State())
	assert.False(t, c.Busy())
	assert.NoError(t, c.Err())
}

func TestCallFailure(t *testing.T) {
	var c Call
	c.Begin()

	failure := errors.New("connection refused")
	c.Fail(failure)

	assert.Equal(t, StateFailed, c.State())
	assert.False(t, c.Busy())
	assert.Equal(t, failure, c.Err())

	// A retry clears the previous failure.
	c.Begin()
	assert.True(t, c.Busy())
	assert.NoError(t, c.Err())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "in-flight", StateInFlight.String())
	assert.Equal(t, "succeeded", StateSucceeded.String())
	assert.Equal(t, "failed", StateFailed.String())
}
