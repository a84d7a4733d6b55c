// Package clipboard defines access to the system clipboard and the watcher
// that turns clipboard changes into translation input while auto-translate
// is enabled.
package clipboard
