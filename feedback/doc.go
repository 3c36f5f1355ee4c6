// Package feedback turns a score and its signals into ordered, actionable
// remarks. Output is deterministic: identical inputs yield identical
// slices.
package feedback
