package internal

// Version is the current neural release.
const Version = "0.1.0"
