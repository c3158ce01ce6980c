// Package config assembles the settings of the thingful command-line client.
//
// Values are layered, each layer overriding only what it sets:
//
//  1. LoadDefaults: local server on 127.0.0.1:50051, 10s per call.
//  2. A JSON file named by -c or -config, e.g.
//
//	{"server_endpoint_addr": "auth.internal:50051", "request_timeout": "5s"}
//
//  3. Flags: -a host:port and -t duration ("5s", "1m").
//
// LoadConfig validates the result, so callers get an error rather than a
// client that dials an empty address or times out every call immediately.
package config
