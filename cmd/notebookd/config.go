// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"io/ioutil"

	"github.com/mitchellh/mapstructure"
	yaml "gopkg.in/yaml.v2"
)

// serverConfig holds the settings the YAML configuration file can
// provide.  Anything given explicitly on the command line wins over
// these.
type serverConfig struct {
	// HTTP is the [ip]:port to serve the REST interface on.
	HTTP string `mapstructure:"http"`

	// Backend is an impl[:address] backend description, as for the
	// -backend flag.
	Backend string `mapstructure:"backend"`

	// LogRequests turns on per-request logging.
	LogRequests bool `mapstructure:"log_requests"`

	// Token, if non-empty, is a bearer token every API request must
	// present.
	Token string `mapstructure:"token"`
}

func loadConfigYaml(filename string) (cfg serverConfig, err error) {
	bytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return
	}
	var raw map[string]interface{}
	err = yaml.Unmarshal(bytes, &raw)
	if err != nil {
		return
	}
	err = mapstructure.Decode(raw, &cfg)
	return
}
