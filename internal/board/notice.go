package board

import (
	"log"
	"time"
)

// Notice reasons.
const (
	// ReasonUnknownPlayer marks an update aimed at a player that was never
	// registered. The update is dropped rather than auto-registering them.
	ReasonUnknownPlayer = "unknown_player"
)

// Notice describes an operation the board observed but did not apply.
// Dropped operations are reported this way instead of as errors so that
// callers feeding the board in bulk never have to stop.
type Notice struct {
	Op       string    `json:"op"`
	Reason   string    `json:"reason"`
	PlayerID string    `json:"player_id"`
	Metric   string    `json:"metric,omitempty"`
	Value    float64   `json:"value,omitempty"`
	At       time.Time `json:"at"`
}

// NoticeSink receives notices. Implementations must be safe for concurrent
// use; the board may call Record from multiple goroutines.
type NoticeSink interface {
	Record(n Notice)
}

// LogSink is a NoticeSink that writes one line per notice to a standard
// logger.
type LogSink struct {
	Logger *log.Logger
}

// Record logs the notice as a key=value line.
func (s LogSink) Record(n Notice) {
	if s.Logger == nil {
		return
	}
	s.Logger.Printf("notice_dropped op=%s reason=%s player=%q metric=%q value=%g",
		n.Op, n.Reason, n.PlayerID, n.Metric, n.Value)
}

// notify forwards a notice to the configured sink, if any. Called outside
// the board lock so a slow sink never blocks other operations.
func (l *Leaderboard) notify(n Notice) {
	if l.notices == nil {
		return
	}
	l.notices.Record(n)
}
