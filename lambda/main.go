package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/creativeprojects/mailsweep/cfg"
	"github.com/creativeprojects/mailsweep/filter"
	"github.com/creativeprojects/mailsweep/lib"
)

const defaultConfigFile = "mailsweep.yaml"

var GitCommit string

// HandleRequest runs the sweep with the account configured in the environment.
// The content of the event is not used: the function is meant to be triggered by a schedule.
func HandleRequest(ctx context.Context, event json.RawMessage) (filter.Result, error) {
	fmt.Printf("mailsweep lambda (commit %q)\n", GitCommit)

	if err := cfg.LoadEnvFiles(".env"); err != nil {
		return filter.Result{}, err
	}
	account, err := loadAccount(os.LookupEnv)
	if err != nil {
		return filter.Result{}, err
	}
	// nobody to answer a prompt here
	account.AskDays = false
	account.Confirm = false

	sequence := filter.NewSequence(account.Options(), filter.RemoteDialer(account.Remote(&lib.NoLog{})), filter.AutoConfirm{}, os.Stdout)
	return sequence.Run(ctx)
}

func loadAccount(lookup cfg.LookupFunc) (cfg.Account, error) {
	configFile := defaultConfigFile
	if value, ok := lookup(cfg.EnvConfig); ok && value != "" {
		configFile = value
	}
	config, err := cfg.LoadFromFile(configFile)
	if err != nil {
		return cfg.Account{}, err
	}
	accountName, _ := lookup(cfg.EnvAccount)
	account, err := config.Account(accountName)
	if err != nil {
		return account, err
	}
	account, err = account.WithEnv(lookup)
	if err != nil {
		return account, err
	}
	return account, account.Validate()
}

func main() {
	lambda.Start(HandleRequest)
}
