package main

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/projectq-plugins/projectq-go/pkg/log"
)

// cmdView prints events in human-readable form.
func cmdView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	runID := fs.String("run-id", "", "show only events of this run (prefix match)")
	devName := fs.String("device", "", "show only events of this device")
	category := fs.String("category", "", "show only this category (gate|measure|job|state|error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("view: expected one log file argument")
	}

	filter := log.Filter{Device: *devName}
	if *category != "" {
		cat, err := parseCategory(*category)
		if err != nil {
			return err
		}
		filter.Category = &cat
	}

	reader, err := log.NewFilteredReader(fs.Arg(0), filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		// Prefix matching on the run ID keeps the flag usable with the
		// shortened IDs the view itself prints.
		if *runID != "" && !strings.HasPrefix(event.RunID, *runID) {
			continue
		}
		formatEvent(event)
	}
}

// parseCategory resolves a category flag value.
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "gate":
		return log.CategoryGate, nil
	case "measure":
		return log.CategoryMeasure, nil
	case "job":
		return log.CategoryJob, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}

// formatEvent prints one event.
func formatEvent(event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Printf("%s [run:%s] %s %s\n", ts, shortenRunID(event.RunID), event.Device, event.Category)

	switch {
	case event.Gate != nil:
		fmt.Printf("  Gate: %s wires=%v", event.Gate.Name, event.Gate.Wires)
		if len(event.Gate.Params) > 0 {
			fmt.Printf(" params=%v", event.Gate.Params)
		}
		fmt.Println()
	case event.Measure != nil:
		fmt.Printf("  <%s> wires=%v value=%+.6f", event.Measure.Observable, event.Measure.Wires, event.Measure.Value)
		if event.Measure.Shots > 0 {
			fmt.Printf(" shots=%d", event.Measure.Shots)
		}
		fmt.Println()
	case event.Job != nil:
		fmt.Printf("  Job: %s backend=%s status=%s", event.Job.JobID, event.Job.Backend, event.Job.Status)
		if event.Job.Shots > 0 {
			fmt.Printf(" shots=%d", event.Job.Shots)
		}
		fmt.Println()
	case event.State != nil:
		fmt.Printf("  State: %s -> %s", event.State.OldState, event.State.NewState)
		if event.State.Reason != "" {
			fmt.Printf(" (%s)", event.State.Reason)
		}
		fmt.Println()
	case event.Error != nil:
		fmt.Printf("  Error: %s", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Printf(" (in %s)", event.Error.Context)
		}
		fmt.Println()
	}
	fmt.Println()
}

// shortenRunID returns the first 8 characters of the run ID.
func shortenRunID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// logStats holds aggregate statistics about a log file.
type logStats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	EventsByDevice   map[string]int
	Runs             map[string]*runStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// runStats holds statistics for a single run.
type runStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Device    string
	Gates     int
	Measures  int
}

// cmdStats analyzes the log file and prints statistics.
func cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("stats: expected one log file argument")
	}

	reader, err := log.NewReader(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &logStats{
		EventsByCategory: make(map[log.Category]int),
		EventsByDevice:   make(map[string]int),
		Runs:             make(map[string]*runStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++
		stats.EventsByDevice[event.Device]++
		if event.Category == log.CategoryError {
			stats.Errors++
		}

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		run, ok := stats.Runs[event.RunID]
		if !ok {
			run = &runStats{FirstSeen: event.Timestamp, Device: event.Device}
			stats.Runs[event.RunID] = run
		}
		run.Events++
		if event.Timestamp.After(run.LastSeen) {
			run.LastSeen = event.Timestamp
		}
		switch event.Category {
		case log.CategoryGate:
			run.Gates++
		case log.CategoryMeasure:
			run.Measures++
		}
	}

	printStats(stats)
	return nil
}

// printStats renders the aggregate report.
func printStats(stats *logStats) {
	fmt.Printf("Events:   %d\n", stats.TotalEvents)
	if !stats.TimeRange.Start.IsZero() {
		fmt.Printf("Range:    %s .. %s (%s)\n",
			stats.TimeRange.Start.UTC().Format(time.RFC3339),
			stats.TimeRange.End.UTC().Format(time.RFC3339),
			stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
	}
	fmt.Printf("Errors:   %d\n", stats.Errors)

	fmt.Println("\nBy category:")
	for _, cat := range []log.Category{
		log.CategoryGate, log.CategoryMeasure, log.CategoryJob,
		log.CategoryState, log.CategoryError,
	} {
		if n := stats.EventsByCategory[cat]; n > 0 {
			fmt.Printf("  %-8s %d\n", cat, n)
		}
	}

	fmt.Println("\nBy device:")
	devices := make([]string, 0, len(stats.EventsByDevice))
	for dev := range stats.EventsByDevice {
		devices = append(devices, dev)
	}
	sort.Strings(devices)
	for _, dev := range devices {
		fmt.Printf("  %-20s %d\n", dev, stats.EventsByDevice[dev])
	}

	fmt.Printf("\nRuns: %d\n", len(stats.Runs))
	runIDs := make([]string, 0, len(stats.Runs))
	for id := range stats.Runs {
		runIDs = append(runIDs, id)
	}
	sort.Slice(runIDs, func(i, j int) bool {
		return stats.Runs[runIDs[i]].FirstSeen.Before(stats.Runs[runIDs[j]].FirstSeen)
	})
	for _, id := range runIDs {
		run := stats.Runs[id]
		fmt.Printf("  [run:%s] %-20s events=%-4d gates=%-4d measures=%d\n",
			shortenRunID(id), run.Device, run.Events, run.Gates, run.Measures)
	}
}
