package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Structs

// Env holds information specific to the host the exchange is
// deployed on. This enables host adaptions without needing to
// maintain two different config files. Use the .env file to
// populate host-local overrides.
type Env struct {
	ListenAddr string
}

// Functions

// LoadEnv looks for an .env file in the working directory of the
// exchange and reads in all defined values. A missing .env file
// is fine; variables already present in the environment win
// either way.
func LoadEnv() *Env {

	// Ignore a missing or unreadable .env file on purpose:
	// the environment itself may carry the overrides.
	_ = godotenv.Load()

	env := new(Env)

	// Fill variables from the environment into struct.
	env.ListenAddr = os.Getenv("CORREIO_LISTEN_ADDR")

	return env
}

// Apply overlays the environment values onto an
// already loaded configuration.
func (e *Env) Apply(conf *Config) {

	if e.ListenAddr != "" {
		conf.Server.ListenAddr = e.ListenAddr
	}
}
