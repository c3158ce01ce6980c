// Package cli provides the interactive thingful command-line client.
//
// It wires configuration and the AuthService client into a small REPL:
//   - register: create an account
//   - login / logout: obtain or forget an access token
//   - whoami: show the owner of the current token
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// Server rejections are printed with the server's own message.
package cli
