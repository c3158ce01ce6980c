package config

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/thingful/internal/flagx"
)

// parseFlags applies -a and -t from os.Args. Other flags belong to other
// loaders and are filtered out first.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "AuthService host:port")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-call timeout, e.g. 5s")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("client flags: %w", err)
	}
	return nil
}
