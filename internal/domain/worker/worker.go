package worker

import "time"

// DefaultOnlineWindow is how recently a worker must have sent a heartbeat to count as online.
const DefaultOnlineWindow = 30 * time.Second

// Presence is the last heartbeat seen from a named worker.
type Presence struct {
	Name     string    `json:"name"`
	LastSeen time.Time `json:"last_seen"`
}

func (p Presence) IsStale(window time.Duration, now time.Time) bool {
	return now.Sub(p.LastSeen) > window
}

// DefaultRoster is the workshop's standing tailor line-up, in remainder-priority order.
var DefaultRoster = []string{"Maris", "Ferry", "Abdul", "Asep", "Hadi", "Fadil", "Aan", "Farid", "Epul", "Opik"}
