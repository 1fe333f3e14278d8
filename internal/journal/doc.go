// Package journal records the outcome of every export run in SQLite.
//
// Each pipeline run (spot or day) gets one row: whether it was sent,
// skipped or failed, how large the payload was, and the error text on
// failure. Rows from the same invocation share a RunID.
package journal
