package board

import (
	"encoding/json"
	"fmt"
	"io"
)

// PlayerRecord is the serialized form of one player: identity plus the full
// metric set. A snapshot is a sequence of these in board order, so restoring
// it reproduces both every value and the tie-break order exactly.
type PlayerRecord struct {
	PlayerID string  `json:"player_id"`
	Metrics  Metrics `json:"metrics"`
}

// Snapshot copies the entire board into records, in registration order.
func (l *Leaderboard) Snapshot() []PlayerRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	recs := make([]PlayerRecord, 0, len(l.order))
	for _, id := range l.order {
		recs = append(recs, PlayerRecord{PlayerID: id, Metrics: l.players[id].clone()})
	}
	return recs
}

// Restore replaces the board's contents with the given records. Record
// order becomes the new registration order. A duplicated player id keeps
// its first position and its last metric set, matching AddPlayer.
func (l *Leaderboard) Restore(recs []PlayerRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.players = make(map[string]Metrics, len(recs))
	l.order = l.order[:0]
	for _, rec := range recs {
		if _, exists := l.players[rec.PlayerID]; !exists {
			l.order = append(l.order, rec.PlayerID)
		}
		l.players[rec.PlayerID] = rec.Metrics.clone()
	}
}

// EncodeSnapshot writes records to w as a JSON array. Float values survive
// an encode/decode round trip bit for bit.
func EncodeSnapshot(w io.Writer, recs []PlayerRecord) error {
	if err := json.NewEncoder(w).Encode(recs); err != nil {
		return fmt.Errorf("board: encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a JSON snapshot produced by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) ([]PlayerRecord, error) {
	var recs []PlayerRecord
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("board: decode snapshot: %w", err)
	}
	return recs, nil
}
