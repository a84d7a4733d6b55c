// Package orchestrator decides when text gets translated and keeps the state
// the presentation layer renders.
//
// Text reaches the orchestrator from three places: the clipboard watcher
// while auto-translate is on, the translate shortcut, and manual input.
// Every translation goes through the FIFO cache first and only misses reach
// the backend. Backend failures never escape: the result shows ErrorMessage
// and the request state returns to idle.
//
// Translations may overlap. Each backend request takes a sequence number and
// a completion only replaces the displayed result when nothing newer has been
// displayed already. A stale completion still fills the cache.
package orchestrator
