package cfg

import (
	"errors"

	"github.com/creativeprojects/mailsweep/filter"
	"github.com/creativeprojects/mailsweep/lib"
	"github.com/creativeprojects/mailsweep/remote"
)

// Validate checks the account can connect: the credentials are never part of the defaults
func (a Account) Validate() error {
	if a.Username == "" {
		return errors.New("missing username")
	}
	if a.Password == "" {
		return errors.New("missing password")
	}
	return a.Options().Validate()
}

func (a Account) Remote(logger lib.Logger) remote.Config {
	serverURL := a.ServerURL
	if serverURL == "" {
		serverURL = remote.DefaultServerURL
	}
	return remote.Config{
		ServerURL:           serverURL,
		Username:            a.Username,
		Password:            a.Password,
		NoTLS:               a.NoTLS,
		SkipTLSVerification: a.SkipTLSVerification,
		Compress:            a.Compress,
		Timeout:             a.Timeout,
		Bandwidth:           a.Bandwidth * 1024,
		DebugLogger:         logger,
	}
}

func (a Account) Options() filter.Options {
	options := filter.NewOptions()
	if a.Folder != "" {
		options.Folder = a.Folder
	}
	if a.Days != nil {
		options.Days = *a.Days
	}
	options.AskDays = a.AskDays
	options.Confirm = a.Confirm
	options.DryRun = a.DryRun
	options.FetchRate = a.FetchRate
	return options
}
