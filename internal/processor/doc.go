// Package processor runs the neural commands: the translation window,
// document translation, the backend health check and the history listing.
// It turns the cli configuration into backends, stores and the orchestrator.
package processor
