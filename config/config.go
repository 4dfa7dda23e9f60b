package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Structs

// Config holds all information parsed from
// the supplied config file.
type Config struct {
	Server Server
	Seed   Seed
}

// Server is the listener related part of the TOML config file.
// ListenAddr is the only value the protocol depends on;
// PrometheusAddr is optional and, when empty, disables the
// metrics endpoint entirely.
type Server struct {
	ListenAddr     string
	PrometheusAddr string
}

// Seed points at an optional file of pre-provisioned accounts
// loaded into the credential store on startup.
type Seed struct {
	File      string
	Separator string
}

// Functions

// LoadConfig takes in the path to the main config file of the
// exchange in TOML syntax and places the values from the file in
// the corresponding struct.
func LoadConfig(configFile string) (*Config, error) {

	conf := new(Config)

	// Parse values from TOML file into struct.
	if _, err := toml.DecodeFile(configFile, conf); err != nil {
		return nil, errors.Wrapf(err, "failed to read in TOML config file at '%s'", configFile)
	}

	if conf.Server.ListenAddr == "" {
		return nil, errors.New("config is missing a server listen address")
	}

	// A seed file without an explicit separator uses the
	// format's default.
	if (conf.Seed.File != "") && (conf.Seed.Separator == "") {
		conf.Seed.Separator = ";"
	}

	return conf, nil
}
