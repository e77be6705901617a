package board

import (
	"fmt"
	"testing"
)

func benchBoard(n int) *Leaderboard {
	lb := New()
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("player-%04d", i)
		lb.AddPlayer(id, Metrics{"score": float64(i % 997), "accuracy": float64(i % 101)})
	}
	return lb
}

// BenchmarkGetTopPlayersSmall benchmarks ranking a small roster
func BenchmarkGetTopPlayersSmall(b *testing.B) {
	lb := benchBoard(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = lb.GetTopPlayers("score", 5)
	}
}

// BenchmarkGetTopPlayersLarge benchmarks ranking a large roster
func BenchmarkGetTopPlayersLarge(b *testing.B) {
	lb := benchBoard(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = lb.GetTopPlayers("score", 5)
	}
}

// BenchmarkUpdateScore benchmarks the increment hot path
func BenchmarkUpdateScore(b *testing.B) {
	lb := benchBoard(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lb.UpdateScore("player-0500", "score", 1)
	}
}

// BenchmarkSnapshot tests memory allocation patterns for full exports
func BenchmarkSnapshot(b *testing.B) {
	lb := benchBoard(1000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = lb.Snapshot()
	}
}
