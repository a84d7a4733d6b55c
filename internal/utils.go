package internal

import (
	"os"
	"path/filepath"
	"strings"
)

// StateDir returns the XDG-style state directory used for persistent data,
// e.g. ~/.local/state/neural
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".neural")
	}
	return filepath.Join(home, ".local", "state", "neural")
}

// Abbreviate shortens s to at most n runes for log output, appending "..."
// when something was cut off
func Abbreviate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
