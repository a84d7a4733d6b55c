// Package history keeps a persistent log of successful translations in a
// local SQLite database. It is a record for the user to look back at, not a
// cache: nothing in it is ever served in place of a backend call.
package history
