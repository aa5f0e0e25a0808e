// Command datacheck validates a game-results CSV file without starting the
// server. It reports how many rows survive normalization and summarizes the
// season and team coverage. The input file is never modified.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"courtside/internal/analytics"
	"courtside/internal/dataset"
)

func main() {
	var (
		filePath = flag.String("file", "data/nba_all_elo.csv", "Path to the game-results CSV file")
		verbose  = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	records, stats, err := dataset.Load(*filePath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seasons := analytics.Seasons(records)

	teams := make(map[string]struct{})
	for _, rec := range records {
		teams[rec.Team] = struct{}{}
	}

	fmt.Printf("File:           %s\n", *filePath)
	fmt.Printf("Rows read:      %d\n", stats.TotalRows)
	fmt.Printf("Rows retained:  %d\n", stats.Retained)
	fmt.Printf("Rows dropped:   %d\n", stats.Dropped)
	fmt.Printf("Null dates:     %d\n", stats.NullDates)
	fmt.Printf("Null ordinals:  %d\n", stats.NullOrdinal)
	fmt.Printf("Teams:          %d\n", len(teams))

	if len(seasons) > 0 {
		fmt.Printf("Seasons:        %d (%d-%d)\n", len(seasons), seasons[0], seasons[len(seasons)-1])
	} else {
		fmt.Println("Seasons:        0")
		os.Exit(1)
	}
}
