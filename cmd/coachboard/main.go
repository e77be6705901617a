// Package main provides the coachboard CLI: it ingests scrim session logs
// into an in-memory leaderboard, prints rankings and per-player practice
// plans, and can save or restore archive snapshots.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/openscrim/coachboard-go/internal/archive"
	"github.com/openscrim/coachboard-go/internal/board"
	"github.com/openscrim/coachboard-go/internal/coach"
	"github.com/openscrim/coachboard-go/internal/config"
	"github.com/openscrim/coachboard-go/internal/ingest"
	"github.com/openscrim/coachboard-go/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	var (
		archivePath = flag.String("archive", cfg.ArchivePath, "snapshot database path")
		loadRef     = flag.String("load", "", "restore a snapshot before ingesting ('latest' or a snapshot id)")
		saveLabel   = flag.String("save", "", "save a snapshot with this label after ingesting")
		metric      = flag.String("metric", session.MetricScore, "metric to rank by")
		topN        = flag.Int("top", cfg.TopN, "ranking depth")
		statsID     = flag.String("stats", "", "print one player's recorded metrics")
		planID      = flag.String("recommend", "", "print a practice plan for one player")
		workers     = flag.Int("workers", cfg.IngestWorkers, "concurrent ingest workers (0 = one per CPU)")
		listSnaps   = flag.Bool("snapshots", false, "list archive snapshots and exit")
	)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if *listSnaps {
		store := openArchive(*archivePath)
		defer store.Close()
		printSnapshots(ctx, store)
		return
	}

	notices := log.New(os.Stderr, "[coachboard] ", log.LstdFlags)
	lb := board.NewWithNotices(&board.LogSink{Logger: notices})

	if *loadRef != "" {
		store := openArchive(*archivePath)
		recs, err := resolveSnapshot(ctx, store, *loadRef)
		store.Close()
		if err != nil {
			config.Exitf("Error: %v", err)
		}
		lb.Restore(recs)
		fmt.Printf("Restored %d players from snapshot.\n", lb.PlayerCount())
	}

	if files := flag.Args(); len(files) > 0 {
		ing := ingest.NewIngestor(lb, *workers)
		summary, err := ing.IngestFiles(ctx, files)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		fmt.Printf("Ingested %d sessions (%d failed): %d new players, %d metric updates.\n",
			summary.SessionsApplied, summary.SessionsFailed,
			summary.PlayersCreated, summary.MetricsUpdated)
	}

	printRanking(lb, *metric, *topN)

	if *statsID != "" {
		printStats(lb, *statsID)
	}
	if *planID != "" {
		printPlan(lb, *planID)
	}

	if *saveLabel != "" {
		store := openArchive(*archivePath)
		defer store.Close()
		id, err := store.SaveSnapshot(ctx, *saveLabel, lb.Snapshot())
		if err != nil {
			config.Exitf("Error: %v", err)
		}
		fmt.Printf("Saved snapshot %s (%d players).\n", id, lb.PlayerCount())
	}
}

func openArchive(path string) *archive.Store {
	store, err := archive.New(path)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	return store
}

// resolveSnapshot maps the -load argument to a stored record set.
func resolveSnapshot(ctx context.Context, store *archive.Store, ref string) ([]board.PlayerRecord, error) {
	if ref == "latest" {
		_, recs, err := store.LatestSnapshot(ctx)
		return recs, err
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot id %q (want 'latest' or a UUID)", ref)
	}
	return store.LoadSnapshot(ctx, id)
}

func printSnapshots(ctx context.Context, store *archive.Store) {
	snaps, err := store.AllSnapshots(ctx)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots.")
		return
	}
	for _, s := range snaps {
		fmt.Printf("%s  %s  %3d players  %s\n",
			s.ID, s.CreatedAt.Format(time.RFC3339), s.PlayerCount, s.Label)
	}
}

func printRanking(lb *board.Leaderboard, metric string, topN int) {
	report := coach.SquadReport(lb, metric, topN)
	if len(report) == 0 {
		fmt.Printf("No players ranked for %s.\n", metric)
		return
	}
	fmt.Printf("Top %d by %s:\n", len(report), metric)
	for _, entry := range report {
		line := fmt.Sprintf("%3d. %-24s %10.2f", entry.Rank, entry.PlayerID, entry.Value)
		if entry.Focus != nil {
			line += fmt.Sprintf("  focus: %s (%.1f -> %.1f)",
				entry.Focus.Metric, entry.Focus.Current, entry.Focus.Target)
		}
		fmt.Println(line)
	}
}

func printStats(lb *board.Leaderboard, playerID string) {
	stats, found := lb.GetPlayerStats(playerID)
	if !found {
		fmt.Printf("No stats recorded for %q.\n", playerID)
		return
	}
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Printf("Stats for %s:\n", playerID)
	for _, name := range names {
		fmt.Printf("  %-18s %g\n", name, stats[name])
	}
}

func printPlan(lb *board.Leaderboard, playerID string) {
	stats, found := lb.GetPlayerStats(playerID)
	if !found {
		fmt.Printf("No stats recorded for %q.\n", playerID)
		return
	}
	recs := coach.Recommend(stats)
	if len(recs) == 0 {
		fmt.Printf("%s has no tracked skill below target.\n", playerID)
		return
	}

	areas := coach.Plan(recs)
	byMetric := make(map[string]coach.FocusArea, len(areas))
	for _, area := range areas {
		byMetric[area.Metric] = area
	}

	fmt.Printf("Practice plan for %s:\n", playerID)
	for _, rec := range recs {
		fmt.Printf("\n%s [%s, %s priority] %.1f -> %.1f over %d days at %s intensity\n",
			rec.Metric, rec.Level, rec.Priority, rec.Current, rec.Target,
			rec.DurationDays, rec.Intensity)
		for _, p := range rec.Practices {
			fmt.Printf("  - %s\n", p)
		}

		area, ok := byMetric[rec.Metric]
		if !ok {
			continue
		}
		fmt.Println("  Drills:")
		for _, a := range area.Assignments {
			fmt.Printf("    %s (difficulty %.1f, ~%d attempts): %s\n",
				a.Name, a.AdjustedDifficulty, a.RecommendedAttempts, a.Description)
		}
		if len(area.Milestones) > 0 {
			steps := make([]string, len(area.Milestones))
			for i, m := range area.Milestones {
				steps[i] = fmt.Sprintf("%.1f", m.Level)
			}
			fmt.Printf("  Milestones: %s\n", strings.Join(steps, ", "))
		}
	}
}
