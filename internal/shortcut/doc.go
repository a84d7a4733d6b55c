// Package shortcut connects the host's global translate shortcut to the
// translation orchestrator.
//
// The host dispatcher is modelled as a Source emitting payload-less named
// signals. Hub is the in-process Source the GUI feeds from its window
// shortcut. Listener subscribes to TranslateShortcut for one language pair
// at a time and is rebound whenever the pair changes.
package shortcut
