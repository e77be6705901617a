// Package board implements an in-memory player leaderboard keyed by
// arbitrary named metrics. All state lives in process memory; nothing is
// written to disk unless a caller explicitly snapshots the board.
package board

import (
	"sort"
	"sync"
	"time"
)

// DefaultTopN is the ranking depth callers get when they have no opinion.
const DefaultTopN = 5

// Metrics holds a player's named numeric values. Metrics a player has never
// recorded are absent from the map and rank as zero.
type Metrics map[string]float64

// clone returns an independent copy so callers can never alias board state.
func (m Metrics) clone() Metrics {
	out := make(Metrics, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Entry is a single ranked result: a player and a copy of their metrics.
type Entry struct {
	PlayerID string  `json:"player_id"`
	Metrics  Metrics `json:"metrics"`
}

// Leaderboard is a concurrency-safe collection of players and their metrics.
// Registration order is tracked so that ranking ties resolve to whoever was
// registered first; overwriting a player keeps their original position.
type Leaderboard struct {
	mu      sync.RWMutex
	players map[string]Metrics
	order   []string

	notices NoticeSink
	now     func() time.Time
}

// New creates an empty leaderboard that discards notices.
func New() *Leaderboard {
	return NewWithNotices(nil)
}

// NewWithNotices creates an empty leaderboard that reports ignored
// operations to sink. A nil sink disables reporting.
func NewWithNotices(sink NoticeSink) *Leaderboard {
	return &Leaderboard{
		players: make(map[string]Metrics),
		notices: sink,
		now:     time.Now,
	}
}

// AddPlayer registers a player with a full metric set, replacing any
// previous metrics without comment. The input map is copied. A player that
// already exists keeps their original registration position.
func (l *Leaderboard) AddPlayer(playerID string, metrics Metrics) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.players[playerID]; !exists {
		l.order = append(l.order, playerID)
	}
	l.players[playerID] = metrics.clone()
}

// UpdateScore adds value to one metric of a known player, creating the
// metric at zero first if the player has never recorded it. Negative values
// are valid deltas. An unknown player is not an error: the call changes
// nothing, emits a notice, and reports false.
func (l *Leaderboard) UpdateScore(playerID, metric string, value float64) bool {
	l.mu.Lock()
	m, exists := l.players[playerID]
	if exists {
		m[metric] += value
	}
	l.mu.Unlock()

	if !exists {
		l.notify(Notice{
			Op:       "update_score",
			Reason:   ReasonUnknownPlayer,
			PlayerID: playerID,
			Metric:   metric,
			Value:    value,
			At:       l.now(),
		})
	}
	return exists
}

// GetTopPlayers ranks all players by the named metric, highest first, and
// returns at most topN entries. Players missing the metric rank as zero.
// Ties keep registration order. A topN of zero or less yields an empty
// result; a topN beyond the population yields everyone.
func (l *Leaderboard) GetTopPlayers(metric string, topN int) []Entry {
	if topN <= 0 {
		return []Entry{}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	ranked := make([]string, len(l.order))
	copy(ranked, l.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return l.players[ranked[i]][metric] > l.players[ranked[j]][metric]
	})
	if topN < len(ranked) {
		ranked = ranked[:topN]
	}

	entries := make([]Entry, 0, len(ranked))
	for _, id := range ranked {
		entries = append(entries, Entry{PlayerID: id, Metrics: l.players[id].clone()})
	}
	return entries
}

// GetPlayerStats retrieves a copy of one player's metrics. The second
// return value reports whether the player is registered.
func (l *Leaderboard) GetPlayerStats(playerID string) (Metrics, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	m, exists := l.players[playerID]
	if !exists {
		return nil, false
	}
	return m.clone(), true
}

// PlayerCount returns how many players are registered.
func (l *Leaderboard) PlayerCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.players)
}
