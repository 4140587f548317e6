package filter

import (
	"errors"
	"fmt"

	"github.com/creativeprojects/mailsweep/lib"
)

const (
	DefaultDays   = 14
	DefaultFolder = "INBOX"
)

type Options struct {
	// Folder to sweep
	Folder string
	// Days is the age threshold: unread messages received before today minus Days are marked as read
	Days int
	// AskDays asks the operator for the number of days, proposing Days as default
	AskDays bool
	// Confirm asks the operator before marking the messages as read
	Confirm bool
	// DryRun reports the messages but leaves them unread
	DryRun bool
	// FetchRate limits the number of messages fetched per second (0 means no limit)
	FetchRate float64
}

func NewOptions() Options {
	return Options{
		Folder: DefaultFolder,
		Days:   DefaultDays,
	}
}

func (o Options) Validate() error {
	if o.Folder == "" {
		return errors.New("missing folder name")
	}
	if o.Days < 0 {
		return fmt.Errorf("%w: %d", lib.ErrInvalidDays, o.Days)
	}
	if o.FetchRate < 0 {
		return fmt.Errorf("invalid fetch rate: %v", o.FetchRate)
	}
	return nil
}
