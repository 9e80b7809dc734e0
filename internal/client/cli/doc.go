// Package cli provides the interactive Yukta command-line client.
//
// It wires configuration, the HTTP API client and a REPL. A background
// watcher pings the server and shows online or offline in the prompt.
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
