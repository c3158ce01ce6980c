package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/thingful/internal/flagx"
)

// defaultEnvFile is loaded when present and -env-file is not given.
const defaultEnvFile = ".env"

// parseEnv overlays Config fields from environment variables named in the
// `env` struct tags. Unset variables leave the current value untouched.
//
// A dotenv file (-env-file, or ./.env when it exists) is read first; it never
// overrides variables already present in the process environment. A missing
// explicit file or an unparsable variable panics.
func parseEnv(config *Config) {
	path := flagx.EnvFileFlags()
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
