// Package cli implements the mockdir command line.
//
// Running mockdir with no command, or with only flags, starts the server,
// so `mockdir --port 4000` is `mockdir serve --port 4000`.
package cli
