package server

import "sync/atomic"

// Stats counts board mutations served since startup. The counters live in
// the transport layer on purpose: the engine itself carries no
// observability state.
type Stats struct {
	Generations atomic.Int64
	Randomizes  atomic.Int64
	Resets      atomic.Int64
	Fills       atomic.Int64
	Resizes     atomic.Int64
	Customizes  atomic.Int64
}

// StatsSnapshot is the JSON shape of GET /api/stats.
type StatsSnapshot struct {
	Generations int64 `json:"generations"`
	Randomizes  int64 `json:"randomizes"`
	Resets      int64 `json:"resets"`
	Fills       int64 `json:"fills"`
	Resizes     int64 `json:"resizes"`
	Customizes  int64 `json:"customizes"`
}

// Snapshot reads all counters. The read is not atomic across counters,
// which is fine for a diagnostic endpoint.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Generations: s.Generations.Load(),
		Randomizes:  s.Randomizes.Load(),
		Resets:      s.Resets.Load(),
		Fills:       s.Fills.Load(),
		Resizes:     s.Resizes.Load(),
		Customizes:  s.Customizes.Load(),
	}
}
