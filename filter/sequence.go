package filter

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/creativeprojects/mailsweep/lib"
	"github.com/creativeprojects/mailsweep/mailbox"
	"github.com/creativeprojects/mailsweep/remote"
	"github.com/creativeprojects/mailsweep/term"
	"golang.org/x/time/rate"
)

// Mailbox is an authenticated session on the mail server.
//
// Fetching a message with peek=false is what marks it as read:
// the server sets the \Seen flag as a side effect of sending the full body.
type Mailbox interface {
	SelectMailbox(name string) (*mailbox.Status, error)
	Search(before time.Time) ([]mailbox.MessageID, error)
	Fetch(id mailbox.MessageID, peek bool) (*mailbox.Message, error)
	CountUnread() (int, error)
	Close() error
}

// Dialer opens the session
type Dialer func() (Mailbox, error)

func RemoteDialer(cfg remote.Config) Dialer {
	return func() (Mailbox, error) {
		session, err := remote.NewImap(cfg)
		if err != nil {
			return nil, err
		}
		return session, nil
	}
}

var _ Mailbox = &remote.Imap{}

type Result struct {
	Folder        string    `json:"folder"`
	Cutoff        time.Time `json:"cutoff"`
	Matched       int       `json:"matched"`
	Fetched       int       `json:"fetched"`
	Failed        int       `json:"failed"`
	InitialUnread int       `json:"initialUnread"`
	FinalUnread   int       `json:"finalUnread"`
	// Processed is the difference between the unread counts before and after the run.
	// It is skewed by any other client changing the mailbox during the run.
	Processed int  `json:"processed"`
	DryRun    bool `json:"dryRun"`
	Cancelled bool `json:"cancelled"`
}

// Sequence marks as read the unread messages older than a number of days
type Sequence struct {
	Options  Options
	Dial     Dialer
	Prompter Prompter
	Report   *Report
	Log      lib.Logger
	// Now returns the current time (used to calculate the cutoff date)
	Now func() time.Time
}

func NewSequence(options Options, dial Dialer, prompter Prompter, out io.Writer) *Sequence {
	return &Sequence{
		Options:  options,
		Dial:     dial,
		Prompter: prompter,
		Report:   NewReport(out),
	}
}

func (s *Sequence) init() {
	if s.Prompter == nil {
		s.Prompter = AutoConfirm{}
	}
	if s.Report == nil {
		s.Report = NewReport(nil)
	}
	if s.Log == nil {
		s.Log = &lib.NoLog{}
	}
	if s.Now == nil {
		s.Now = time.Now
	}
}

// Run connects to the server, marks the matching messages as read and disconnects.
// Once connected, the session is always closed, even on error.
//
// A message that cannot be fetched is reported and skipped. There's no rollback:
// messages fetched before an error stay marked as read.
func (s *Sequence) Run(ctx context.Context) (Result, error) {
	s.init()
	result := Result{
		Folder: s.Options.Folder,
		DryRun: s.Options.DryRun,
	}
	if s.Dial == nil {
		return result, fmt.Errorf("%w: no dialer", lib.ErrConnection)
	}

	days := s.Options.Days
	if s.Options.AskDays {
		var err error
		days, err = s.Prompter.Days(days)
		if err != nil {
			return result, err
		}
	}
	options := s.Options
	options.Days = days
	if err := options.Validate(); err != nil {
		return result, err
	}

	session, err := s.Dial()
	if err != nil {
		return result, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			term.Warnf("error closing the connection: %s", err)
		}
	}()

	status, err := session.SelectMailbox(options.Folder)
	if err != nil {
		return result, err
	}
	s.Log.Printf("mailbox %q: %d messages", status.Name, status.Messages)

	cutoff, err := lib.Cutoff(s.Now(), options.Days)
	if err != nil {
		return result, err
	}
	result.Cutoff = cutoff

	ids, err := session.Search(cutoff)
	if err != nil {
		return result, err
	}
	result.Matched = len(ids)

	result.InitialUnread, err = session.CountUnread()
	if err != nil {
		return result, err
	}
	s.Report.Start(result.InitialUnread, result.Matched, cutoff, options.DryRun)

	if options.Confirm && len(ids) > 0 {
		question := fmt.Sprintf("Mark %d emails as read?", len(ids))
		if options.DryRun {
			question = fmt.Sprintf("Display %d emails?", len(ids))
		}
		agreed, err := s.Prompter.Confirm(question)
		if err != nil {
			return result, err
		}
		if !agreed {
			s.Report.Cancelled()
			result.Cancelled = true
			result.FinalUnread = result.InitialUnread
			return result, nil
		}
	}

	runErr := s.processEach(ctx, session, ids, options, &result)

	result.FinalUnread, err = session.CountUnread()
	if err != nil {
		if runErr != nil {
			return result, fmt.Errorf("%w (then cannot count unread emails: %v)", runErr, err)
		}
		return result, err
	}
	result.Processed = result.InitialUnread - result.FinalUnread
	s.Report.End(result.Processed, result.FinalUnread, result.Failed)

	return result, runErr
}

// processEach fetches the messages one by one in the order returned by the search
func (s *Sequence) processEach(ctx context.Context, session Mailbox, ids []mailbox.MessageID, options Options, result *Result) error {
	var limiter *rate.Limiter
	if options.FetchRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(options.FetchRate), 1)
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}
		msg, err := session.Fetch(id, options.DryRun)
		if err != nil {
			// display error but keep going
			term.Errorf("cannot fetch message %s: %s", id, err)
			result.Failed++
			continue
		}
		result.Fetched++

		summary, err := mailbox.ReadSummary(msg.Body)
		if err != nil {
			term.Warnf("message %s: %s", id, err)
		}
		s.Report.Message(summary)
	}
	return nil
}
