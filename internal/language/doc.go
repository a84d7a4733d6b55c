// Package language defines the languages neural can translate between and
// the source/target pair the orchestrator works with.
package language
