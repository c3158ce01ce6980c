// Package client talks to the thingful AuthService over gRPC.
//
// GRPCClient manages the connection, remembers the access token returned by
// Login and attaches it to later calls, and maps gRPC statuses to errors the
// CLI can print. Rejections arrive as *RemoteError whose message is the
// server's verbatim text; an unreachable server yields ErrUnavailable.
package client
