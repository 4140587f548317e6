package filter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/creativeprojects/mailsweep/lib"
	"github.com/creativeprojects/mailsweep/mailbox"
)

const (
	ruleWidth       = 100
	noSubject       = "(no subject)"
	unknownSender   = "(unknown sender)"
	unknownDate     = "(no date)"
	processedFormat = "Processed Emails: %d\n"
	remainingFormat = "After processing, there are %d unread emails.\n"
)

var rule = strings.Repeat("=", ruleWidth)

// Report writes a human readable report of the run, one line at a time
type Report struct {
	out io.Writer
}

func NewReport(out io.Writer) *Report {
	if out == nil {
		out = io.Discard
	}
	return &Report{out: out}
}

func (r *Report) Start(initialUnread, matched int, cutoff time.Time, dryRun bool) {
	fmt.Fprintf(r.out, "Initial unread emails: %d\n", initialUnread)
	if dryRun {
		fmt.Fprintln(r.out, "Dry run: emails will stay unread")
	}
	fmt.Fprintf(r.out, "Processing %d unread emails from before %s\n", matched, lib.FormatIMAPDate(cutoff))
	fmt.Fprintln(r.out, rule)
}

func (r *Report) Message(summary mailbox.Summary) {
	fmt.Fprintf(r.out, "Subject: %s\n", orDefault(summary.Subject, noSubject))
	fmt.Fprintf(r.out, "From: %s\n", orDefault(summary.From, unknownSender))
	fmt.Fprintf(r.out, "Date: %s\n", orDefault(summary.Date, unknownDate))
	fmt.Fprintln(r.out, rule)
}

func (r *Report) Cancelled() {
	fmt.Fprintln(r.out, "Cancelled: no email was marked as read")
}

func (r *Report) End(processed, finalUnread, failed int) {
	if failed > 0 {
		fmt.Fprintf(r.out, "Failed Emails: %d\n", failed)
	}
	fmt.Fprintf(r.out, processedFormat, processed)
	fmt.Fprintf(r.out, remainingFormat, finalUnread)
}

func orDefault(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
