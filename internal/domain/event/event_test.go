package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/tailor-flow/internal/domain/event"
)

func TestChannelFor(t *testing.T) {
	tests := []struct {
		typ  event.Type
		want event.Channel
	}{
		{event.TypeOrderUpdated, event.ChannelOrder},
		{event.TypeOrderDeleted, event.ChannelOrder},
		{event.TypeDistributionComputed, event.ChannelOrder},
		{event.TypeChatMessage, event.ChannelChat},
		{event.TypeWorkerOnline, event.ChannelPresence},
		{event.TypeWorkerOffline, event.ChannelPresence},
		{event.Type("garbage"), event.Channel("")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, event.ChannelFor(tt.typ), "type %s", tt.typ)
	}
}

func TestNew(t *testing.T) {
	e := event.New(event.TypeChatMessage, "abc")
	assert.Equal(t, event.TypeChatMessage, e.Type)
	assert.Equal(t, "abc", e.Key)
	assert.False(t, e.Timestamp.IsZero())
}
