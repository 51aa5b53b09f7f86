package worker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/tailor-flow/internal/domain/worker"
)

func TestPresence_IsStale(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastSeen time.Time
		want     bool
	}{
		{name: "just seen", lastSeen: now, want: false},
		{name: "inside window", lastSeen: now.Add(-29 * time.Second), want: false},
		{name: "on the edge", lastSeen: now.Add(-worker.DefaultOnlineWindow), want: false},
		{name: "past window", lastSeen: now.Add(-31 * time.Second), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := worker.Presence{Name: "Maris", LastSeen: tt.lastSeen}
			assert.Equal(t, tt.want, p.IsStale(worker.DefaultOnlineWindow, now))
		})
	}
}
