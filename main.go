package main

import "github.com/creativeprojects/mailsweep/cmd"

// these fields are populated by the goreleaser build
var (
	version = "0.0.0-dev"
	commit  = ""
	date    = ""
	builtBy = ""
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
