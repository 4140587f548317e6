package cmd

import (
	"log"
	"os"

	"github.com/creativeprojects/mailsweep/cfg"
	"github.com/creativeprojects/mailsweep/lib"
	"github.com/creativeprojects/mailsweep/term"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mailsweep",
	Short: "Mark old unread emails as read",
	Long: "\nmailsweep searches a mailbox for unread emails older than a number of days,\n" +
		"displays them and marks them as read.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLog, initConfig)
	flag := rootCmd.PersistentFlags()
	flag.StringVarP(&global.configFile, "config", "c", "mailsweep.yaml", "configuration file")
	flag.StringVar(&global.envFile, "env-file", ".env", "file containing environment variables")
	flag.BoolVarP(&global.quiet, "quiet", "q", false, "only display warnings and errors")
	flag.BoolVarP(&global.verbose, "verbose", "v", false, "display debugging information")
}

func initConfig() {
	if err := cfg.LoadEnvFiles(global.envFile); err != nil {
		term.Errorf("cannot load environment file: %s", err)
		os.Exit(1)
	}
	var err error
	config, err = cfg.LoadFromFile(global.configFile)
	if err != nil {
		term.Errorf("cannot open or read configuration file: %s", err)
		os.Exit(1)
	}
}

func initLog() {
	switch {
	case global.verbose:
		term.SetLevel(term.LevelDebug)
	case global.quiet:
		term.SetLevel(term.LevelWarn)
	}
}

func debugLogger() lib.Logger {
	if global.verbose {
		return log.Default()
	}
	return &lib.NoLog{}
}

func Execute(version, commit, date, builtBy string) {
	setApp(version, commit, date, builtBy)
	if err := rootCmd.Execute(); err != nil {
		term.Error(err)
		os.Exit(1)
	}
}
