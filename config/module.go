package config

import (
	"flag"

	"github.com/safing/jitterpool/log"
	"github.com/safing/jitterpool/modules"
)

var configFileFlag string

func init() {
	modules.Register("config", nil, start, nil)

	flag.StringVar(&configFileFlag, "config", "", "load option values from this YAML or JSON file")
}

// start loads the config file. It runs after all modules registered their
// options in prep and before any module depending on "config" starts.
func start() error {
	if configFileFlag == "" {
		return nil
	}

	if err := LoadFile(configFileFlag); err != nil {
		return err
	}
	log.Infof("config: loaded %s", configFileFlag)
	return nil
}
