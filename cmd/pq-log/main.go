// Command pq-log is a tool for viewing and analyzing execution log
// files written by devices with the -log flag of pq-run (or any
// log.FileLogger).
//
// Usage:
//
//	pq-log <command> [flags] <file.qlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	pq-log view run.qlog
//
//	# View only measurement events
//	pq-log view -category measure run.qlog
//
//	# View a single run
//	pq-log view -run-id 8f14e45f run.qlog
//
//	# Show statistics
//	pq-log stats run.qlog
package main

import (
	"fmt"
	"os"
)

const usage = `pq-log - execution log analyzer

Usage:
  pq-log <command> [flags] <file.qlog>

Commands:
  view     View log file in human-readable format
  stats    Show statistics about the log file

Run 'pq-log <command> -h' for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "view":
		err = cmdView(os.Args[2:])
	case "stats":
		err = cmdStats(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "pq-log: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pq-log: %v\n", err)
		os.Exit(1)
	}
}
