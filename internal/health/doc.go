// Package health tracks whether the translation backend is reachable.
package health
