package cmd

import "github.com/creativeprojects/mailsweep/cfg"

type GlobalFlags struct {
	configFile string
	envFile    string
	quiet      bool
	verbose    bool
}

var (
	global GlobalFlags
	config *cfg.Config
)
