package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/kanban/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// loadDotenv exports variables from a dotenv file into the process
// environment without overriding variables that are already set. The file
// is taken from -env-file; the default ".env" is optional.
func loadDotenv(args []string) error {
	path := flagx.EnvFileFlag(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays fields tagged with `env` that are present in the
// environment. Unset variables leave the current value untouched.
func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
