// Package gui is the fyne front end: an input pane, a result pane, language
// selectors and the auto-translate toggle. All state lives in the
// orchestrator; the window only renders its snapshots and forwards user
// actions to it.
package gui
