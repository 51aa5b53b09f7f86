package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_RegisterUnregister(t *testing.T) {
	reg := NewSessionRegistry()
	reg.Register("session-1", "Maris")
	assert.True(t, reg.IsConnected("Maris"))

	got, ok := reg.Unregister("session-1")
	assert.True(t, ok)
	assert.Equal(t, "Maris", got)
	assert.False(t, reg.IsConnected("Maris"))
}

func TestRegistry_WorkerMovesToNewSession(t *testing.T) {
	reg := NewSessionRegistry()
	reg.Register("session-old", "Maris")
	reg.Register("session-new", "Maris")

	_, ok := reg.Unregister("session-old")
	assert.False(t, ok, "old session should be forgotten")
	assert.True(t, reg.IsConnected("Maris"))
}

func TestRegistry_SessionSwitchesWorker(t *testing.T) {
	reg := NewSessionRegistry()
	reg.Register("s", "Maris")
	reg.Register("s", "Ferry")

	assert.False(t, reg.IsConnected("Maris"))
	assert.True(t, reg.IsConnected("Ferry"))
}

func TestRegistry_NotifyWithoutSessionsIsNoOp(t *testing.T) {
	reg := NewSessionRegistry()
	assert.NoError(t, reg.NotifyWorker(context.Background(), "Maris", map[string]string{"type": "x"}))
	assert.NoError(t, reg.NotifyAll(context.Background(), map[string]string{"type": "x"}))
}

func TestRegistry_NotifyCheckedInWorkerNeedsServer(t *testing.T) {
	reg := NewSessionRegistry()
	reg.Register("session-1", "Maris")

	err := reg.NotifyWorker(context.Background(), "Maris", map[string]string{"type": "x"})
	assert.EqualError(t, err, "mcp server not initialized")
}
