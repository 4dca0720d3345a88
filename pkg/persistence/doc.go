// Package persistence stores completed hardware job records in a JSON
// file. A run that timed out client-side can later be recovered with
// the retrieve-execution option instead of being re-submitted and
// re-billed against the hardware quota.
package persistence
