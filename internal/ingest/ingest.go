package ingest

import (
	"context"
	"hash/fnv"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/openscrim/coachboard-go/internal/board"
	"github.com/openscrim/coachboard-go/internal/session"
)

// Summary contains aggregate counts for one ingest run.
type Summary struct {
	SessionsApplied uint64 `json:"sessions_applied"`
	SessionsFailed  uint64 `json:"sessions_failed"`
	PlayersCreated  uint64 `json:"players_created"`
	MetricsUpdated  uint64 `json:"metrics_updated"`
}

// Ingestor applies batches of sessions with a bounded worker pool. Sessions
// are sharded to workers by player id: one player's sessions apply serially
// in batch order, distinct players proceed in parallel. A failed session
// never stops the run; failures are counted and the errors come back
// aggregated.
//
// First-registration order across distinct players follows apply completion
// order. Runs that need a reproducible tie-break order should use one
// worker.
type Ingestor struct {
	applier Applier
	workers int
}

// NewIngestor creates an ingestor over the given board. A workers value of
// zero or less means one worker per CPU.
func NewIngestor(b *board.Leaderboard, workers int) *Ingestor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ingestor{
		applier: Applier{Board: b},
		workers: workers,
	}
}

// shard pins a player id to one worker. Apply reads current stats before
// writing deltas, so two workers must never hold sessions for the same
// player at once; one shard per player keeps them serial and in batch
// order.
func (ing *Ingestor) shard(playerID string) int {
	h := fnv.New32a()
	h.Write([]byte(playerID))
	return int(h.Sum32() % uint32(ing.workers))
}

// Run applies every session and reports aggregate counts. Cancellation
// stops feeding new sessions; whatever was already picked up completes.
func (ing *Ingestor) Run(ctx context.Context, sessions []session.Session) (Summary, error) {
	shards := make([]chan session.Session, ing.workers)
	for i := range shards {
		shards[i] = make(chan session.Session)
	}

	var applied, failed, created, updated uint64
	var wg sync.WaitGroup
	var errMu sync.Mutex
	var errs error

	for i := 0; i < ing.workers; i++ {
		wg.Add(1)
		go func(jobs <-chan session.Session) {
			defer wg.Done()
			for {
				select {
				case s, ok := <-jobs:
					if !ok {
						return
					}
					res, err := ing.applier.Apply(s)
					if err != nil {
						atomic.AddUint64(&failed, 1)
						errMu.Lock()
						errs = multierr.Append(errs, err)
						errMu.Unlock()
						continue
					}
					atomic.AddUint64(&applied, 1)
					if res.Created {
						atomic.AddUint64(&created, 1)
					}
					atomic.AddUint64(&updated, uint64(res.Updated))
				case <-ctx.Done():
					return
				}
			}
		}(shards[i])
	}

feed:
	for _, s := range sessions {
		select {
		case shards[ing.shard(s.PlayerID)] <- s:
		case <-ctx.Done():
			break feed
		}
	}
	for _, jobs := range shards {
		close(jobs)
	}
	wg.Wait()

	summary := Summary{
		SessionsApplied: atomic.LoadUint64(&applied),
		SessionsFailed:  atomic.LoadUint64(&failed),
		PlayersCreated:  atomic.LoadUint64(&created),
		MetricsUpdated:  atomic.LoadUint64(&updated),
	}
	if ctx.Err() != nil {
		errMu.Lock()
		errs = multierr.Append(errs, ctx.Err())
		errMu.Unlock()
	}
	return summary, errs
}

// IngestFiles reads JSONL session logs and applies everything they hold.
// Unreadable files are reported alongside per-session failures; readable
// ones still go through.
func (ing *Ingestor) IngestFiles(ctx context.Context, paths []string) (Summary, error) {
	var all []session.Session
	var errs error
	for _, path := range paths {
		sessions, err := session.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		all = append(all, sessions...)
	}

	summary, err := ing.Run(ctx, all)
	return summary, multierr.Append(errs, err)
}
